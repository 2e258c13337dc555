package openai

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"polycap/internal/app/audio"
	"polycap/internal/app/model"
)

// WhisperTranscriber transcribes PCM chunks through the Whisper API.
type WhisperTranscriber struct {
	client *openai.Client
	config Config
}

// NewWhisperTranscriber creates the transcriber engine from its config.
func NewWhisperTranscriber(cfg Config) *WhisperTranscriber {
	cfg = cfg.withDefaults(string(openai.Whisper1), 60*time.Second)
	return &WhisperTranscriber{
		client: newClient(cfg),
		config: cfg,
	}
}

func (t *WhisperTranscriber) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:         "openai-whisper",
		Name:       "OpenAI Whisper",
		Capability: model.CapabilitySpeechToText,
		Priority:   t.config.Priority,
		Timeout:    t.config.Timeout,
		Languages:  t.config.Languages,
	}
}

func (t *WhisperTranscriber) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	if request.Audio == nil || len(request.Audio.Samples) == 0 {
		return model.Failure(model.FailureInvalidOutput, "transcriber received no audio")
	}

	wav := audio.EncodeWAV(request.Audio.Samples, request.Audio.SampleRate)
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.config.Model,
		Reader:   bytes.NewReader(wav),
		FilePath: "chunk.wav",
		Language: request.SourceLanguage,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return classifyError(err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return model.Failure(model.FailureInvalidOutput, "transcription came back empty")
	}
	return model.SuccessText(strings.TrimSpace(resp.Text))
}
