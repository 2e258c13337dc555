package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"polycap/internal/config"
)

// ArtifactKind partitions the bucket by what produced the audio
const (
	ArtifactKindUpload = "uploads"
	ArtifactKindSpeech = "speech"
)

// AudioArtifact describes an audio payload headed for storage
type AudioArtifact struct {
	Name            string
	Kind            string
	ContentType     string
	DurationSeconds float64
	Language        string
}

// StoredArtifact is the storage location of a persisted payload
type StoredArtifact struct {
	Key      string    `json:"key"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
	StoredAt time.Time `json:"storedAt"`
}

// PresignedArtifact is a time-limited download link
type PresignedArtifact struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ArtifactStore persists audio artifacts produced or consumed by capabilities
type ArtifactStore interface {
	StoreAudio(ctx context.Context, data []byte, artifact AudioArtifact) (*StoredArtifact, error)
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (*PresignedArtifact, error)
	Delete(ctx context.Context, key string) error
}

// MinioArtifactStore implements ArtifactStore using MinIO
type MinioArtifactStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewMinioArtifactStore creates a MinIO-backed artifact store and ensures the
// configured bucket exists.
func NewMinioArtifactStore(cfg config.ArtifactStoreConfig) (*MinioArtifactStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &MinioArtifactStore{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		useSSL:   cfg.UseSSL,
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return store, nil
}

// StoreAudio uploads an audio payload under a duration-bucketed key
func (s *MinioArtifactStore) StoreAudio(ctx context.Context, data []byte, artifact AudioArtifact) (*StoredArtifact, error) {
	key := artifactKey(artifact)

	contentType := artifact.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	metadata := map[string]string{
		"original-name":    artifact.Name,
		"duration-seconds": fmt.Sprintf("%.2f", artifact.DurationSeconds),
		"stored-at":        time.Now().Format(time.RFC3339),
	}
	if artifact.Language != "" {
		metadata["language"] = artifact.Language
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload artifact: %w", err)
	}

	return &StoredArtifact{
		Key:      key,
		URL:      s.objectURL(key),
		Size:     int64(len(data)),
		StoredAt: time.Now(),
	}, nil
}

// PresignedGetURL generates a time-limited download URL for a stored artifact
func (s *MinioArtifactStore) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (*PresignedArtifact, error) {
	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedArtifact{
		URL:       presignedURL.String(),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// Delete removes a stored artifact
func (s *MinioArtifactStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}

func (s *MinioArtifactStore) objectURL(key string) string {
	protocol := "http"
	if s.useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.endpoint, s.bucket, key)
}

// artifactKey builds "<kind>/<duration bucket>/<timestamp>-<id><ext>" so
// operators can reap short clips and long recordings on different schedules.
func artifactKey(artifact AudioArtifact) string {
	kind := artifact.Kind
	if kind == "" {
		kind = ArtifactKindUpload
	}

	ext := filepath.Ext(artifact.Name)
	if ext == "" {
		ext = ".wav"
	}

	timestamp := time.Now().Unix()
	fileID := uuid.New().String()[:8]
	return fmt.Sprintf("%s/%s/%d-%s%s", kind, durationBucket(artifact.DurationSeconds), timestamp, fileID, ext)
}

// durationBucket classifies audio length for retention purposes
func durationBucket(seconds float64) string {
	switch {
	case seconds < 30:
		return "short"
	case seconds < 300:
		return "medium"
	default:
		return "long"
	}
}

// MockArtifactStore implements ArtifactStore in memory (for testing)
type MockArtifactStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMockArtifactStore creates an in-memory artifact store
func NewMockArtifactStore() *MockArtifactStore {
	return &MockArtifactStore{
		objects: make(map[string][]byte),
	}
}

func (s *MockArtifactStore) StoreAudio(ctx context.Context, data []byte, artifact AudioArtifact) (*StoredArtifact, error) {
	key := artifactKey(artifact)

	s.mu.Lock()
	s.objects[key] = append([]byte(nil), data...)
	s.mu.Unlock()

	return &StoredArtifact{
		Key:      key,
		URL:      fmt.Sprintf("/storage/%s", key),
		Size:     int64(len(data)),
		StoredAt: time.Now(),
	}, nil
}

func (s *MockArtifactStore) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (*PresignedArtifact, error) {
	s.mu.Lock()
	_, exists := s.objects[key]
	s.mu.Unlock()
	if !exists {
		return nil, fmt.Errorf("artifact %q not found", key)
	}

	return &PresignedArtifact{
		URL:       fmt.Sprintf("https://mock-storage.example.com/presigned/%s", key),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

func (s *MockArtifactStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Object returns a stored payload by key (for testing)
func (s *MockArtifactStore) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, exists := s.objects[key]
	return data, exists
}

// Keys returns every stored key (for testing)
func (s *MockArtifactStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}
	return keys
}

var _ ArtifactStore = (*MinioArtifactStore)(nil)
var _ ArtifactStore = (*MockArtifactStore)(nil)
