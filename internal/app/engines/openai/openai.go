// Package openai adapts the OpenAI API into capability engines: chat
// completions for summaries and translations, Whisper for transcription and
// the speech endpoint for synthesis. API errors are classified into failure
// kinds so the fallback chain can react to quota pressure and outages.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"polycap/internal/app/model"
)

// Config carries the per-engine OpenAI settings.
type Config struct {
	APIKey    string        `yaml:"api_key" json:"api_key"`
	BaseURL   string        `yaml:"base_url" json:"base_url"`
	Model     string        `yaml:"model" json:"model"`
	Voice     string        `yaml:"voice" json:"voice"` // speech synthesis only
	Priority  int           `yaml:"priority" json:"priority"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	Languages []string      `yaml:"languages" json:"languages"` // empty means every language
}

func (c Config) withDefaults(defaultModel string, defaultTimeout time.Duration) Config {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Voice == "" {
		c.Voice = string(openai.VoiceAlloy)
	}
	return c
}

// newClient builds a client honoring the BaseURL override, which doubles as
// the test seam.
func newClient(cfg Config) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

// classifyError maps an API error onto the failure kind the chain acts on.
func classifyError(err error) model.EngineOutcome {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return model.Failure(model.FailureQuotaExceeded, "rate limit exceeded: "+apiErr.Message)
		case http.StatusUnauthorized, http.StatusForbidden:
			return model.Failure(model.FailureUnavailable, "authentication failed: "+apiErr.Message)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return model.Failure(model.FailureUnavailable, "service error: "+apiErr.Message)
		default:
			return model.Failure(model.FailureInvalidOutput, apiErr.Message)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return model.Failure(model.FailureTimeout, err.Error())
	}
	return model.Failure(model.FailureUnavailable, err.Error())
}

// complete runs one chat completion and returns the first choice.
func complete(ctx context.Context, client *openai.Client, chatModel, prompt string) (string, *model.EngineOutcome) {
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		outcome := classifyError(err)
		return "", &outcome
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		outcome := model.Failure(model.FailureInvalidOutput, "completion returned no choices")
		return "", &outcome
	}
	return resp.Choices[0].Message.Content, nil
}
