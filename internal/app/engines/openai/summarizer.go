package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"polycap/internal/app/model"
)

// ChatSummarizer produces summaries through chat completions.
type ChatSummarizer struct {
	client *openai.Client
	config Config
}

// NewChatSummarizer creates the summarizer engine from its config.
func NewChatSummarizer(cfg Config) *ChatSummarizer {
	cfg = cfg.withDefaults(openai.GPT4oMini, 30*time.Second)
	return &ChatSummarizer{
		client: newClient(cfg),
		config: cfg,
	}
}

func (s *ChatSummarizer) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:         "openai-summarize",
		Name:       "OpenAI Chat Summarizer",
		Capability: model.CapabilitySummarize,
		Priority:   s.config.Priority,
		Timeout:    s.config.Timeout,
		Languages:  s.config.Languages,
	}
}

func (s *ChatSummarizer) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	text, failure := complete(ctx, s.client, s.config.Model, summaryPrompt(request))
	if failure != nil {
		return *failure
	}
	return model.SuccessText(strings.TrimSpace(text))
}

func summaryPrompt(request *model.CapabilityRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the following text in at most %d characters.", request.MaxLengthFor())
	switch request.Style {
	case model.StyleBullets:
		b.WriteString(" Format the summary as bullet points, one per line prefixed with \"- \".")
	case model.StyleAbstract:
		b.WriteString(" Write the summary as a formal abstract.")
	}
	b.WriteString(" Respond with the summary only, in the same language as the text.\n\n")
	b.WriteString(request.InputText())
	return b.String()
}
