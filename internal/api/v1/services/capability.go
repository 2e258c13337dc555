// Package services wraps the orchestration core behind DTO-shaped interfaces
// the HTTP handlers consume. Engine failures stay absorbed in result statuses;
// only malformed requests and missing resources become API errors.
package services

import (
	"context"
	"fmt"
	"time"

	apierrors "polycap/internal/api/errors"
	"polycap/internal/api/v1/dto"
	"polycap/internal/app/audio"
	"polycap/internal/app/model"
	"polycap/internal/app/orchestrator"
)

// presignExpiry bounds how long a stored speech artifact URL stays valid.
const presignExpiry = time.Hour

// AudioUpload carries a multipart WAV upload into the service layer
type AudioUpload struct {
	Data     []byte
	Filename string
	Language string
	Store    bool
}

// CapabilityService executes capability requests on behalf of the API
type CapabilityService interface {
	Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.TextResultResponse, error)
	Translate(ctx context.Context, req *dto.TranslateRequest) (*dto.TextResultResponse, error)
	Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TextResultResponse, error)
	TranscribeUpload(ctx context.Context, upload *AudioUpload) (*dto.TextResultResponse, error)
	Synthesize(ctx context.Context, req *dto.SpeechRequest) (*dto.SpeechResultResponse, error)
}

// DefaultCapabilityService implements CapabilityService over the orchestrator
type DefaultCapabilityService struct {
	orchestrator *orchestrator.CapabilityOrchestrator
	artifacts    ArtifactStore
}

// NewCapabilityService creates a new capability service. A nil artifact store
// downgrades store requests to warnings instead of persisted artifacts.
func NewCapabilityService(orc *orchestrator.CapabilityOrchestrator, artifacts ArtifactStore) *DefaultCapabilityService {
	return &DefaultCapabilityService{
		orchestrator: orc,
		artifacts:    artifacts,
	}
}

// Summarize condenses a text input
func (s *DefaultCapabilityService) Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.TextResultResponse, error) {
	result, err := s.execute(ctx, req.ToCapabilityRequest())
	if err != nil {
		return nil, err
	}
	return dto.ToTextResultResponse(result), nil
}

// Translate renders a text input in the target language
func (s *DefaultCapabilityService) Translate(ctx context.Context, req *dto.TranslateRequest) (*dto.TextResultResponse, error) {
	result, err := s.execute(ctx, req.ToCapabilityRequest())
	if err != nil {
		return nil, err
	}
	return dto.ToTextResultResponse(result), nil
}

// Transcribe turns raw PCM samples into text
func (s *DefaultCapabilityService) Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TextResultResponse, error) {
	result, err := s.execute(ctx, req.ToCapabilityRequest())
	if err != nil {
		return nil, err
	}

	response := dto.ToTextResultResponse(result)
	if req.Store {
		data := audio.EncodeWAV(req.Samples, req.SampleRate)
		seconds := audio.Duration(req.Samples, req.SampleRate)
		s.storeUpload(ctx, response, data, "samples.wav", seconds)
	}
	return response, nil
}

// TranscribeUpload turns an uploaded WAV file into text
func (s *DefaultCapabilityService) TranscribeUpload(ctx context.Context, upload *AudioUpload) (*dto.TextResultResponse, error) {
	samples, sampleRate, err := audio.ParseWAV(upload.Data)
	if err != nil {
		return nil, apierrors.NewBadRequestError(fmt.Sprintf("invalid WAV payload: %v", err))
	}

	request := &model.CapabilityRequest{
		Capability: model.CapabilitySpeechToText,
		Audio: &model.AudioPayload{
			Samples:    samples,
			SampleRate: sampleRate,
		},
		SourceLanguage: upload.Language,
	}

	result, err := s.execute(ctx, request)
	if err != nil {
		return nil, err
	}

	response := dto.ToTextResultResponse(result)
	if upload.Store {
		seconds := audio.Duration(samples, sampleRate)
		s.storeUpload(ctx, response, upload.Data, upload.Filename, seconds)
	}
	return response, nil
}

// Synthesize renders text as speech. With store set the WAV lands in artifact
// storage and a presigned URL replaces the inline audio.
func (s *DefaultCapabilityService) Synthesize(ctx context.Context, req *dto.SpeechRequest) (*dto.SpeechResultResponse, error) {
	result, err := s.execute(ctx, req.ToCapabilityRequest())
	if err != nil {
		return nil, err
	}

	response := dto.ToSpeechResultResponse(result)
	if samples, sampleRate, err := audio.ParseWAV(result.Audio); err == nil {
		response.SampleRate = sampleRate
		response.DurationSeconds = audio.Duration(samples, sampleRate)
	}

	if req.Store && len(result.Audio) > 0 {
		s.storeSpeech(ctx, response, result.Audio, req.Language)
	}
	return response, nil
}

// execute runs the orchestrator and maps validation failures to API errors.
// Results come back whatever their status; a failed chain is still a result.
func (s *DefaultCapabilityService) execute(ctx context.Context, request *model.CapabilityRequest) (*model.CapabilityResult, error) {
	result, err := s.orchestrator.Execute(ctx, request)
	if err != nil {
		return nil, apierrors.NewBadRequestError(err.Error())
	}
	return result, nil
}

// storeUpload persists transcription input audio. Storage problems degrade to
// warnings; the transcript the caller asked for is already in hand.
func (s *DefaultCapabilityService) storeUpload(ctx context.Context, response *dto.TextResultResponse, data []byte, filename string, seconds float64) {
	if s.artifacts == nil {
		response.Warnings = append(response.Warnings, "artifact storage is not configured; upload was not persisted")
		return
	}

	stored, err := s.artifacts.StoreAudio(ctx, data, AudioArtifact{
		Name:            filename,
		Kind:            ArtifactKindUpload,
		ContentType:     "audio/wav",
		DurationSeconds: seconds,
	})
	if err != nil {
		response.Warnings = append(response.Warnings, fmt.Sprintf("artifact storage failed: %v", err))
		return
	}

	response.Artifact = &dto.ArtifactResponse{
		Key: stored.Key,
		URL: stored.URL,
	}
}

// storeSpeech persists synthesized audio and swaps the inline payload for a
// presigned URL. On storage failure the inline audio stays, with a warning.
func (s *DefaultCapabilityService) storeSpeech(ctx context.Context, response *dto.SpeechResultResponse, data []byte, language string) {
	if s.artifacts == nil {
		response.Warnings = append(response.Warnings, "artifact storage is not configured; returning inline audio")
		return
	}

	stored, err := s.artifacts.StoreAudio(ctx, data, AudioArtifact{
		Name:            "speech.wav",
		Kind:            ArtifactKindSpeech,
		ContentType:     "audio/wav",
		DurationSeconds: response.DurationSeconds,
		Language:        language,
	})
	if err != nil {
		response.Warnings = append(response.Warnings, fmt.Sprintf("artifact storage failed: %v", err))
		return
	}

	artifact := &dto.ArtifactResponse{
		Key: stored.Key,
		URL: stored.URL,
	}
	if presigned, err := s.artifacts.PresignedGetURL(ctx, stored.Key, presignExpiry); err == nil {
		artifact.URL = presigned.URL
		artifact.ExpiresAt = presigned.ExpiresAt
	}

	response.Artifact = artifact
	response.Audio = nil
}
