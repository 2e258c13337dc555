package local

import (
	"context"
	"math"
	"strings"
	"testing"

	"polycap/internal/app/model"
)

// tone produces a constant sine burst for test signals
func tone(seconds float64, rate int, freq, amplitude float64) []float64 {
	n := int(seconds * float64(rate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return samples
}

func transcribeRequest(samples []float64, rate int) *model.CapabilityRequest {
	return &model.CapabilityRequest{
		Capability: model.CapabilitySpeechToText,
		Audio:      &model.AudioPayload{Samples: samples, SampleRate: rate},
	}
}

func TestTranscriberCountsSegments(t *testing.T) {
	rate := 8000
	var samples []float64
	samples = append(samples, tone(1.0, rate, 440, 0.5)...)
	samples = append(samples, make([]float64, rate/2)...)
	samples = append(samples, tone(1.0, rate, 440, 0.5)...)

	tr := NewPatternTranscriber(90)
	outcome := tr.Invoke(context.Background(), transcribeRequest(samples, rate))
	if !outcome.OK() {
		t.Fatalf("Expected success, got %s: %s", outcome.Kind, outcome.Message)
	}

	if !strings.Contains(outcome.Text, "offline transcript") {
		t.Errorf("Expected offline label, got %q", outcome.Text)
	}
	if !strings.Contains(outcome.Text, "2 spoken segments") {
		t.Errorf("Expected 2 segments reported, got %q", outcome.Text)
	}
	if !strings.Contains(outcome.Text, "short recording") {
		t.Errorf("Expected short duration bucket for 2.5s, got %q", outcome.Text)
	}
}

func TestTranscriberSubSecondSingular(t *testing.T) {
	rate := 8000
	samples := tone(0.3, rate, 440, 0.5)

	tr := NewPatternTranscriber(90)
	outcome := tr.Invoke(context.Background(), transcribeRequest(samples, rate))

	if !strings.Contains(outcome.Text, "sub-second recording") {
		t.Errorf("Expected sub-second bucket, got %q", outcome.Text)
	}
	if !strings.Contains(outcome.Text, "1 spoken segment") || strings.Contains(outcome.Text, "segments") {
		t.Errorf("Expected singular segment phrasing, got %q", outcome.Text)
	}
}

func TestTranscriberSilence(t *testing.T) {
	tr := NewPatternTranscriber(90)
	outcome := tr.Invoke(context.Background(), transcribeRequest(make([]float64, 8000), 8000))
	if !outcome.OK() {
		t.Fatalf("Expected success on silence, got %s", outcome.Kind)
	}
	if !strings.Contains(outcome.Text, "0 spoken segments") {
		t.Errorf("Expected zero segments for silence, got %q", outcome.Text)
	}
}

func TestTranscriberNoAudioFails(t *testing.T) {
	tr := NewPatternTranscriber(90)
	outcome := tr.Invoke(context.Background(), &model.CapabilityRequest{Capability: model.CapabilitySpeechToText})
	if outcome.OK() {
		t.Error("Expected failure for missing audio")
	}
}

func TestTranscriberDeterministic(t *testing.T) {
	rate := 8000
	samples := tone(1.5, rate, 330, 0.4)
	tr := NewPatternTranscriber(90)

	first := tr.Invoke(context.Background(), transcribeRequest(samples, rate))
	second := tr.Invoke(context.Background(), transcribeRequest(samples, rate))

	if first.Text != second.Text {
		t.Errorf("Expected identical output across runs, got %q and %q", first.Text, second.Text)
	}
}
