// Package gemini adapts the Gemini API into summarize and translate engines.
// Multiple API keys rotate on quota pressure so one exhausted key does not
// take the engine out of the chain.
package gemini

import (
	"context"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"polycap/internal/app/model"
)

const defaultModel = "gemini-2.5-flash"

// Config carries the per-engine Gemini settings.
type Config struct {
	APIKeys   []string      `yaml:"api_keys" json:"api_keys"`
	Model     string        `yaml:"model" json:"model"`
	Priority  int           `yaml:"priority" json:"priority"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	Languages []string      `yaml:"languages" json:"languages"` // empty means every language
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

// keyRing cycles through API keys; rotation advances on quota errors.
type keyRing struct {
	mu      sync.Mutex
	keys    []string
	current int
}

func newKeyRing(keys []string) *keyRing {
	return &keyRing{keys: keys}
}

func (k *keyRing) key() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.keys) == 0 {
		return ""
	}
	return k.keys[k.current]
}

func (k *keyRing) rotate() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.keys) == 0 {
		return
	}
	k.current = (k.current + 1) % len(k.keys)
}

func (k *keyRing) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}

// isQuotaError matches the rate-limit shapes the API reports.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// generate runs one prompt, rotating through keys on quota errors. Every key
// exhausted resolves as QuotaExceeded; other API errors map to their kinds.
func generate(ctx context.Context, ring *keyRing, modelName, prompt string) (string, *model.EngineOutcome) {
	attempts := ring.size()
	if attempts == 0 {
		outcome := model.Failure(model.FailureUnavailable, "no API keys configured")
		return "", &outcome
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  ring.key(),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = err
			ring.rotate()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				lastErr = err
				ring.rotate()
				continue
			}
			outcome := classifyError(err)
			return "", &outcome
		}

		text := collectText(result)
		if text == "" {
			outcome := model.Failure(model.FailureInvalidOutput, "response carried no text")
			return "", &outcome
		}
		return text, nil
	}

	message := "every API key exhausted"
	if lastErr != nil {
		message += ": " + lastErr.Error()
	}
	outcome := model.Failure(model.FailureQuotaExceeded, message)
	return "", &outcome
}

func collectText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

func classifyError(err error) model.EngineOutcome {
	if err == nil {
		return model.Failure(model.FailureUnavailable, "unknown error")
	}
	switch {
	case isQuotaError(err):
		return model.Failure(model.FailureQuotaExceeded, err.Error())
	case strings.Contains(err.Error(), "deadline exceeded"),
		strings.Contains(err.Error(), "context canceled"):
		return model.Failure(model.FailureTimeout, err.Error())
	default:
		return model.Failure(model.FailureUnavailable, err.Error())
	}
}
