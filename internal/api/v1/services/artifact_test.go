package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactKeyLayout(t *testing.T) {
	tests := []struct {
		name     string
		artifact AudioArtifact
		prefix   string
		suffix   string
	}{
		{
			name:     "short upload keeps extension",
			artifact: AudioArtifact{Name: "clip.wav", Kind: ArtifactKindUpload, DurationSeconds: 12},
			prefix:   "uploads/short/",
			suffix:   ".wav",
		},
		{
			name:     "medium speech",
			artifact: AudioArtifact{Name: "speech.wav", Kind: ArtifactKindSpeech, DurationSeconds: 45},
			prefix:   "speech/medium/",
			suffix:   ".wav",
		},
		{
			name:     "long recording",
			artifact: AudioArtifact{Name: "meeting.wav", Kind: ArtifactKindUpload, DurationSeconds: 1800},
			prefix:   "uploads/long/",
			suffix:   ".wav",
		},
		{
			name:     "missing kind and extension fall back",
			artifact: AudioArtifact{Name: "samples", DurationSeconds: 3},
			prefix:   "uploads/short/",
			suffix:   ".wav",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := artifactKey(tt.artifact)
			assert.True(t, strings.HasPrefix(key, tt.prefix), "key %q should start with %q", key, tt.prefix)
			assert.True(t, strings.HasSuffix(key, tt.suffix), "key %q should end with %q", key, tt.suffix)
		})
	}
}

func TestMockArtifactStoreRoundTrip(t *testing.T) {
	store := NewMockArtifactStore()
	ctx := context.Background()

	stored, err := store.StoreAudio(ctx, []byte("payload"), AudioArtifact{
		Name:            "clip.wav",
		Kind:            ArtifactKindUpload,
		ContentType:     "audio/wav",
		DurationSeconds: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.Size)

	data, exists := store.Object(stored.Key)
	require.True(t, exists)
	assert.Equal(t, []byte("payload"), data)

	presigned, err := store.PresignedGetURL(ctx, stored.Key, time.Hour)
	require.NoError(t, err)
	assert.Contains(t, presigned.URL, stored.Key)
	assert.True(t, presigned.ExpiresAt.After(time.Now()))

	require.NoError(t, store.Delete(ctx, stored.Key))
	_, exists = store.Object(stored.Key)
	assert.False(t, exists)

	_, err = store.PresignedGetURL(ctx, stored.Key, time.Hour)
	assert.Error(t, err, "presigning a deleted artifact should fail")
}
