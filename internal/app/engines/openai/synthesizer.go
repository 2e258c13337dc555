package openai

import (
	"context"
	"io"
	"time"

	"github.com/sashabaranov/go-openai"

	"polycap/internal/app/model"
)

// SpeechSynthesizer renders text to audio through the speech endpoint.
type SpeechSynthesizer struct {
	client *openai.Client
	config Config
}

// NewSpeechSynthesizer creates the synthesizer engine from its config.
func NewSpeechSynthesizer(cfg Config) *SpeechSynthesizer {
	cfg = cfg.withDefaults(string(openai.TTSModel1), 60*time.Second)
	return &SpeechSynthesizer{
		client: newClient(cfg),
		config: cfg,
	}
}

func (s *SpeechSynthesizer) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:         "openai-speech",
		Name:       "OpenAI Speech",
		Capability: model.CapabilityTextToSpeech,
		Priority:   s.config.Priority,
		Timeout:    s.config.Timeout,
		Languages:  s.config.Languages,
	}
}

func (s *SpeechSynthesizer) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	speed := 1.0
	if request.Rate == model.RateSlow {
		speed = 0.75
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.config.Model),
		Input:          request.InputText(),
		Voice:          openai.SpeechVoice(s.config.Voice),
		ResponseFormat: openai.SpeechResponseFormatWav,
		Speed:          speed,
	})
	if err != nil {
		return classifyError(err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return model.Failure(model.FailureInvalidOutput, "reading speech response: "+err.Error())
	}
	if len(data) == 0 {
		return model.Failure(model.FailureInvalidOutput, "speech response came back empty")
	}
	return model.SuccessAudio(data)
}
