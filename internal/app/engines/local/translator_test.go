package local

import (
	"context"
	"testing"

	"polycap/internal/app/model"
)

func translateRequest(text, target, source string) *model.CapabilityRequest {
	return &model.CapabilityRequest{
		Capability:     model.CapabilityTranslate,
		Text:           &model.TextPayload{Content: text},
		TargetLanguage: target,
		SourceLanguage: source,
	}
}

func TestTranslatorSpanish(t *testing.T) {
	tr := NewDictionaryTranslator(90)
	outcome := tr.Invoke(context.Background(), translateRequest("hello world", "es", ""))
	if !outcome.OK() {
		t.Fatalf("Expected success, got %s: %s", outcome.Kind, outcome.Message)
	}
	if outcome.Text != "hola mundo" {
		t.Errorf("Expected 'hola mundo', got %q", outcome.Text)
	}
}

func TestTranslatorKeepsCapitalization(t *testing.T) {
	tr := NewDictionaryTranslator(90)
	outcome := tr.Invoke(context.Background(), translateRequest("Hello world", "fr", "en"))
	if outcome.Text != "Bonjour monde" {
		t.Errorf("Expected 'Bonjour monde', got %q", outcome.Text)
	}
}

func TestTranslatorKeepsPunctuation(t *testing.T) {
	tr := NewDictionaryTranslator(90)
	outcome := tr.Invoke(context.Background(), translateRequest("hello, world.", "de", ""))
	if outcome.Text != "hallo, welt." {
		t.Errorf("Expected 'hallo, welt.', got %q", outcome.Text)
	}
}

func TestTranslatorUnknownWordsPassThrough(t *testing.T) {
	tr := NewDictionaryTranslator(90)
	outcome := tr.Invoke(context.Background(), translateRequest("hello kubernetes", "es", ""))
	if outcome.Text != "hola kubernetes" {
		t.Errorf("Expected 'hola kubernetes', got %q", outcome.Text)
	}
}

func TestTranslatorUnmappedTargetTagged(t *testing.T) {
	tr := NewDictionaryTranslator(90)
	outcome := tr.Invoke(context.Background(), translateRequest("hello world", "ja", ""))
	if !outcome.OK() {
		t.Fatalf("Expected success even for unmapped pairs, got %s", outcome.Kind)
	}
	if outcome.Text != "[JA] hello world" {
		t.Errorf("Expected tagged passthrough, got %q", outcome.Text)
	}
}

func TestTranslatorNonEnglishSourceTagged(t *testing.T) {
	tr := NewDictionaryTranslator(90)
	outcome := tr.Invoke(context.Background(), translateRequest("bonjour le monde", "es", "fr"))
	if outcome.Text != "[ES] bonjour le monde" {
		t.Errorf("Expected tagged passthrough for non-English source, got %q", outcome.Text)
	}
}

func TestTranslatorDeterministic(t *testing.T) {
	tr := NewDictionaryTranslator(90)
	request := translateRequest("good day friend, the water is good", "de", "")

	first := tr.Invoke(context.Background(), request)
	second := tr.Invoke(context.Background(), request)

	if first.Text != second.Text {
		t.Errorf("Expected identical output across runs, got %q and %q", first.Text, second.Text)
	}
}

func TestTranslatorDescriptor(t *testing.T) {
	d := NewDictionaryTranslator(95).Descriptor()
	if d.Capability != model.CapabilityTranslate {
		t.Errorf("Expected translate capability, got %s", d.Capability)
	}
	if !d.Deterministic {
		t.Error("Expected deterministic descriptor")
	}
	if len(d.Languages) != 0 {
		t.Errorf("Expected no language restriction, got %v", d.Languages)
	}
}
