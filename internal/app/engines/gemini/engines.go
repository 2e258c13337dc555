package gemini

import (
	"context"
	"fmt"
	"strings"

	"polycap/internal/app/model"
)

// Summarizer produces summaries through the Gemini API.
type Summarizer struct {
	ring   *keyRing
	config Config
}

// NewSummarizer creates the summarizer engine from its config.
func NewSummarizer(cfg Config) *Summarizer {
	cfg = cfg.withDefaults()
	return &Summarizer{
		ring:   newKeyRing(cfg.APIKeys),
		config: cfg,
	}
}

func (s *Summarizer) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:         "gemini-summarize",
		Name:       "Gemini Summarizer",
		Capability: model.CapabilitySummarize,
		Priority:   s.config.Priority,
		Timeout:    s.config.Timeout,
		Languages:  s.config.Languages,
	}
}

func (s *Summarizer) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	text, failure := generate(ctx, s.ring, s.config.Model, geminiSummaryPrompt(request))
	if failure != nil {
		return *failure
	}
	return model.SuccessText(text)
}

// Translator produces translations through the Gemini API.
type Translator struct {
	ring   *keyRing
	config Config
}

// NewTranslator creates the translator engine from its config.
func NewTranslator(cfg Config) *Translator {
	cfg = cfg.withDefaults()
	return &Translator{
		ring:   newKeyRing(cfg.APIKeys),
		config: cfg,
	}
}

func (t *Translator) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:         "gemini-translate",
		Name:       "Gemini Translator",
		Capability: model.CapabilityTranslate,
		Priority:   t.config.Priority,
		Timeout:    t.config.Timeout,
		Languages:  t.config.Languages,
	}
}

func (t *Translator) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	text, failure := generate(ctx, t.ring, t.config.Model, geminiTranslationPrompt(request))
	if failure != nil {
		return *failure
	}
	return model.SuccessText(text)
}

func geminiSummaryPrompt(request *model.CapabilityRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the following text in at most %d characters.", request.MaxLengthFor())
	switch request.Style {
	case model.StyleBullets:
		b.WriteString(" Format the summary as bullet points, one per line prefixed with \"- \".")
	case model.StyleAbstract:
		b.WriteString(" Write the summary as a formal abstract.")
	}
	b.WriteString(" Respond with the summary only.\n\n")
	b.WriteString(request.InputText())
	return b.String()
}

func geminiTranslationPrompt(request *model.CapabilityRequest) string {
	var b strings.Builder
	if request.SourceLanguage != "" {
		fmt.Fprintf(&b, "Translate the following text from %q to %q.", request.SourceLanguage, request.TargetLanguage)
	} else {
		fmt.Fprintf(&b, "Translate the following text to %q.", request.TargetLanguage)
	}
	b.WriteString(" Respond with the translation only.\n\n")
	b.WriteString(request.InputText())
	return b.String()
}
