package local

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"polycap/internal/app/model"
)

func summarizeRequest(text string) *model.CapabilityRequest {
	return &model.CapabilityRequest{
		Capability: model.CapabilitySummarize,
		Text:       &model.TextPayload{Content: text},
	}
}

func TestSummarizerKeepsFirstAndLastSentence(t *testing.T) {
	s := NewExtractiveSummarizer(90)
	text := "The opening sentence sets the scene. Filler one follows. Filler two follows. " +
		"Filler three follows. Filler four follows. The closing sentence wraps up."

	outcome := s.Invoke(context.Background(), summarizeRequest(text))
	if !outcome.OK() {
		t.Fatalf("Expected success, got %s: %s", outcome.Kind, outcome.Message)
	}

	if !strings.Contains(outcome.Text, "The opening sentence sets the scene.") {
		t.Errorf("Expected first sentence in summary, got %q", outcome.Text)
	}
	if !strings.Contains(outcome.Text, "The closing sentence wraps up.") {
		t.Errorf("Expected last sentence in summary, got %q", outcome.Text)
	}
}

func TestSummarizerPrefersSignalSentences(t *testing.T) {
	s := NewExtractiveSummarizer(90)
	text := "One starts here. Two follows on. Three follows on. The important point hides here. " +
		"Five follows on. Six follows on. Seven follows on. Eight follows on. " +
		"Nine follows on. Ten ends here."

	outcome := s.Invoke(context.Background(), summarizeRequest(text))
	if !outcome.OK() {
		t.Fatalf("Expected success, got %s: %s", outcome.Kind, outcome.Message)
	}

	if !strings.Contains(outcome.Text, "The important point hides here.") {
		t.Errorf("Expected keyword sentence in summary, got %q", outcome.Text)
	}
	if strings.Contains(outcome.Text, "Five follows on.") {
		t.Errorf("Expected plain middle sentence to be dropped, got %q", outcome.Text)
	}
}

func TestSummarizerFillsRatioWithoutKeywords(t *testing.T) {
	s := NewExtractiveSummarizer(90)
	text := "One starts here. Two follows on. Three follows on. Four follows on. " +
		"Five follows on. Six follows on. Seven follows on. Eight follows on. " +
		"Nine follows on. Ten ends here."

	outcome := s.Invoke(context.Background(), summarizeRequest(text))
	if !outcome.OK() {
		t.Fatalf("Expected success, got %s: %s", outcome.Kind, outcome.Message)
	}

	if !strings.Contains(outcome.Text, "Two follows on.") {
		t.Errorf("Expected earliest middle sentence to fill the budget, got %q", outcome.Text)
	}
	if strings.Contains(outcome.Text, "Six follows on.") {
		t.Errorf("Expected later middles to be dropped, got %q", outcome.Text)
	}
}

func TestSummarizerBulletStyle(t *testing.T) {
	s := NewExtractiveSummarizer(90)
	request := summarizeRequest("First point made. Second point made. Third point made.")
	request.Style = model.StyleBullets

	outcome := s.Invoke(context.Background(), request)
	if !outcome.OK() {
		t.Fatalf("Expected success, got %s: %s", outcome.Kind, outcome.Message)
	}

	for _, line := range strings.Split(outcome.Text, "\n") {
		if !strings.HasPrefix(line, "- ") {
			t.Errorf("Expected bullet prefix on every line, got %q", line)
		}
	}
}

func TestSummarizerAbstractStyle(t *testing.T) {
	s := NewExtractiveSummarizer(90)
	request := summarizeRequest("First point made. Second point made. Third point made.")
	request.Style = model.StyleAbstract

	outcome := s.Invoke(context.Background(), request)
	if !outcome.OK() {
		t.Fatalf("Expected success, got %s: %s", outcome.Kind, outcome.Message)
	}

	if !strings.HasPrefix(outcome.Text, abstractLead) {
		t.Errorf("Expected abstract lead sentence, got %q", outcome.Text)
	}
}

func TestSummarizerHonorsMaxLength(t *testing.T) {
	s := NewExtractiveSummarizer(90)
	request := summarizeRequest(strings.Repeat("This sentence keeps the summary growing steadily. ", 20))
	request.MaxLength = 50

	outcome := s.Invoke(context.Background(), request)
	if !outcome.OK() {
		t.Fatalf("Expected success, got %s: %s", outcome.Kind, outcome.Message)
	}

	if n := utf8.RuneCountInString(outcome.Text); n > 50 {
		t.Errorf("Expected at most 50 runes, got %d: %q", n, outcome.Text)
	}
	if outcome.Text == "" {
		t.Error("Expected non-empty summary after truncation")
	}
}

func TestSummarizerSingleSentence(t *testing.T) {
	s := NewExtractiveSummarizer(90)
	outcome := s.Invoke(context.Background(), summarizeRequest("Just one sentence here."))
	if !outcome.OK() {
		t.Fatalf("Expected success, got %s: %s", outcome.Kind, outcome.Message)
	}
	if outcome.Text != "Just one sentence here." {
		t.Errorf("Expected the sentence unchanged, got %q", outcome.Text)
	}
}

func TestSummarizerDeterministic(t *testing.T) {
	s := NewExtractiveSummarizer(90)
	request := summarizeRequest("Alpha leads the way. The key insight sits here. Omega closes it out.")

	first := s.Invoke(context.Background(), request)
	second := s.Invoke(context.Background(), request)

	if first.Text != second.Text {
		t.Errorf("Expected identical output across runs, got %q and %q", first.Text, second.Text)
	}
}

func TestSummarizerDescriptor(t *testing.T) {
	d := NewExtractiveSummarizer(90).Descriptor()
	if d.Capability != model.CapabilitySummarize {
		t.Errorf("Expected summarize capability, got %s", d.Capability)
	}
	if !d.Deterministic {
		t.Error("Expected deterministic descriptor")
	}
	if d.Priority != 90 {
		t.Errorf("Expected priority 90, got %d", d.Priority)
	}
}
