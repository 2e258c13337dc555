package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"polycap/internal/app/model"
)

// ChatTranslator produces translations through chat completions.
type ChatTranslator struct {
	client *openai.Client
	config Config
}

// NewChatTranslator creates the translator engine from its config.
func NewChatTranslator(cfg Config) *ChatTranslator {
	cfg = cfg.withDefaults(openai.GPT4oMini, 30*time.Second)
	return &ChatTranslator{
		client: newClient(cfg),
		config: cfg,
	}
}

func (t *ChatTranslator) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:         "openai-translate",
		Name:       "OpenAI Chat Translator",
		Capability: model.CapabilityTranslate,
		Priority:   t.config.Priority,
		Timeout:    t.config.Timeout,
		Languages:  t.config.Languages,
	}
}

func (t *ChatTranslator) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	text, failure := complete(ctx, t.client, t.config.Model, translationPrompt(request))
	if failure != nil {
		return *failure
	}
	return model.SuccessText(strings.TrimSpace(text))
}

func translationPrompt(request *model.CapabilityRequest) string {
	var b strings.Builder
	if request.SourceLanguage != "" {
		fmt.Fprintf(&b, "Translate the following text from %q to %q.", request.SourceLanguage, request.TargetLanguage)
	} else {
		fmt.Fprintf(&b, "Translate the following text to %q.", request.TargetLanguage)
	}
	b.WriteString(" Respond with the translation only, preserving the original formatting.\n\n")
	b.WriteString(request.InputText())
	return b.String()
}
