package dto

import (
	"time"

	"github.com/samber/lo"
	"polycap/internal/api/errors"
	"polycap/internal/app/model"
)

// SummarizeRequest represents the request to summarize a text
type SummarizeRequest struct {
	Text        string `json:"text" binding:"required,min=100"`
	MaxLength   int    `json:"max_length,omitempty" binding:"omitempty,gt=0"`
	LengthClass string `json:"length_class,omitempty" binding:"omitempty,oneof=short medium long"`
	Style       string `json:"style,omitempty" binding:"omitempty,oneof=paragraph bullets abstract"`
	Format      string `json:"format,omitempty" binding:"omitempty,oneof=plain html"`
	Language    string `json:"language,omitempty"`
	ChunkLimit  int    `json:"chunk_limit,omitempty" binding:"omitempty,gt=0"`
}

// Validate performs domain-specific validation
func (r *SummarizeRequest) Validate() error {
	validationErrors := make(map[string]string)

	if r.Language != "" && !validLanguageCode(r.Language) {
		validationErrors["language"] = "must be a two-letter ISO 639-1 code"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid summarize request", validationErrors)
	}

	return nil
}

// ToCapabilityRequest converts the DTO into the orchestrator request
func (r *SummarizeRequest) ToCapabilityRequest() *model.CapabilityRequest {
	return &model.CapabilityRequest{
		Capability: model.CapabilitySummarize,
		Text: &model.TextPayload{
			Content: r.Text,
			Format:  model.InputFormat(r.Format),
		},
		SourceLanguage: r.Language,
		MaxLength:      r.MaxLength,
		LengthClass:    model.LengthClass(r.LengthClass),
		Style:          model.SummaryStyle(r.Style),
		ChunkLimit:     r.ChunkLimit,
	}
}

// TranslateRequest represents the request to translate a text
type TranslateRequest struct {
	Text           string `json:"text" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
	SourceLanguage string `json:"source_language,omitempty"`
	Format         string `json:"format,omitempty" binding:"omitempty,oneof=plain html"`
	ChunkLimit     int    `json:"chunk_limit,omitempty" binding:"omitempty,gt=0"`
}

// Validate performs domain-specific validation
func (r *TranslateRequest) Validate() error {
	validationErrors := make(map[string]string)

	if !validLanguageCode(r.TargetLanguage) {
		validationErrors["target_language"] = "must be a two-letter ISO 639-1 code"
	}
	if r.SourceLanguage != "" && !validLanguageCode(r.SourceLanguage) {
		validationErrors["source_language"] = "must be a two-letter ISO 639-1 code"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid translate request", validationErrors)
	}

	return nil
}

// ToCapabilityRequest converts the DTO into the orchestrator request
func (r *TranslateRequest) ToCapabilityRequest() *model.CapabilityRequest {
	return &model.CapabilityRequest{
		Capability: model.CapabilityTranslate,
		Text: &model.TextPayload{
			Content: r.Text,
			Format:  model.InputFormat(r.Format),
		},
		SourceLanguage: r.SourceLanguage,
		TargetLanguage: r.TargetLanguage,
		ChunkLimit:     r.ChunkLimit,
	}
}

// TranscribeRequest represents the JSON variant of the transcription request,
// carrying raw PCM samples. File uploads use the multipart endpoint instead.
type TranscribeRequest struct {
	Samples    []float64 `json:"samples" binding:"required"`
	SampleRate int       `json:"sample_rate" binding:"required,gt=0"`
	Language   string    `json:"language,omitempty"`
	Store      bool      `json:"store,omitempty"`
}

// Validate performs domain-specific validation
func (r *TranscribeRequest) Validate() error {
	validationErrors := make(map[string]string)

	if r.Language != "" && !validLanguageCode(r.Language) {
		validationErrors["language"] = "must be a two-letter ISO 639-1 code"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid transcription request", validationErrors)
	}

	return nil
}

// ToCapabilityRequest converts the DTO into the orchestrator request
func (r *TranscribeRequest) ToCapabilityRequest() *model.CapabilityRequest {
	return &model.CapabilityRequest{
		Capability: model.CapabilitySpeechToText,
		Audio: &model.AudioPayload{
			Samples:    r.Samples,
			SampleRate: r.SampleRate,
		},
		SourceLanguage: r.Language,
	}
}

// SpeechRequest represents the request to synthesize speech from text
type SpeechRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language,omitempty"`
	Rate     string `json:"rate,omitempty" binding:"omitempty,oneof=normal slow"`
	Store    bool   `json:"store,omitempty"`
}

// Validate performs domain-specific validation
func (r *SpeechRequest) Validate() error {
	validationErrors := make(map[string]string)

	if r.Language != "" && !validLanguageCode(r.Language) {
		validationErrors["language"] = "must be a two-letter ISO 639-1 code"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid speech request", validationErrors)
	}

	return nil
}

// ToCapabilityRequest converts the DTO into the orchestrator request
func (r *SpeechRequest) ToCapabilityRequest() *model.CapabilityRequest {
	return &model.CapabilityRequest{
		Capability:     model.CapabilityTextToSpeech,
		Text:           &model.TextPayload{Content: r.Text},
		SourceLanguage: r.Language,
		Rate:           model.SpeechRate(r.Rate),
	}
}

// ProvenanceResponse records how one chunk was resolved in API responses
type ProvenanceResponse struct {
	ChunkIndex       int      `json:"chunkIndex"`
	AttemptedEngines []string `json:"attemptedEngines"`
	SuccessfulEngine string   `json:"successfulEngine,omitempty"`
	Attempts         int      `json:"attempts"`
	Degraded         bool     `json:"degraded,omitempty"`
}

// ArtifactResponse points at a stored audio artifact
type ArtifactResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// TextResultResponse represents the result of a text-producing capability
type TextResultResponse struct {
	Status           string               `json:"status"`
	Payload          string               `json:"payload"`
	DetectedLanguage string               `json:"detectedLanguage,omitempty"`
	EngineProvenance []ProvenanceResponse `json:"engineProvenance"`
	Warnings         []string             `json:"warnings,omitempty"`
	ProcessingMs     int64                `json:"processingMs"`
	Artifact         *ArtifactResponse    `json:"artifact,omitempty"`
}

// SpeechResultResponse represents the result of a speech synthesis request.
// Audio carries the WAV bytes base64-encoded unless the artifact replaces it.
type SpeechResultResponse struct {
	Status           string               `json:"status"`
	Audio            []byte               `json:"audio,omitempty"`
	SampleRate       int                  `json:"sampleRate,omitempty"`
	DurationSeconds  float64              `json:"durationSeconds,omitempty"`
	Artifact         *ArtifactResponse    `json:"artifact,omitempty"`
	EngineProvenance []ProvenanceResponse `json:"engineProvenance"`
	Warnings         []string             `json:"warnings,omitempty"`
	ProcessingMs     int64                `json:"processingMs"`
}

// ToTextResultResponse converts an orchestrator result to the response DTO
func ToTextResultResponse(result *model.CapabilityResult) *TextResultResponse {
	return &TextResultResponse{
		Status:           string(result.Status),
		Payload:          result.Text,
		DetectedLanguage: result.DetectedLanguage,
		EngineProvenance: toProvenanceResponses(result.Provenance),
		Warnings:         result.Warnings,
		ProcessingMs:     result.ProcessingTime.Milliseconds(),
	}
}

// ToSpeechResultResponse converts an orchestrator result to the response DTO
func ToSpeechResultResponse(result *model.CapabilityResult) *SpeechResultResponse {
	return &SpeechResultResponse{
		Status:           string(result.Status),
		Audio:            result.Audio,
		EngineProvenance: toProvenanceResponses(result.Provenance),
		Warnings:         result.Warnings,
		ProcessingMs:     result.ProcessingTime.Milliseconds(),
	}
}

func toProvenanceResponses(provenance []model.ChunkProvenance) []ProvenanceResponse {
	return lo.Map(provenance, func(p model.ChunkProvenance, _ int) ProvenanceResponse {
		return ProvenanceResponse{
			ChunkIndex:       p.ChunkIndex,
			AttemptedEngines: p.AttemptedEngines,
			SuccessfulEngine: p.SuccessfulEngine,
			Attempts:         p.Attempts,
			Degraded:         p.Degraded,
		}
	})
}

// validLanguageCode accepts lowercase two-letter ISO 639-1 codes
func validLanguageCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
