package local

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode"

	"polycap/internal/app/audio"
	"polycap/internal/app/model"
)

const (
	synthSampleRate = 16000
	noteDuration    = 30 * time.Millisecond

	// baseFrequency anchors the two-octave chromatic range characters map into.
	baseFrequency = 220.0
	toneAmplitude = 0.3
)

// WaveformSynthesizer renders text as a tone sequence: one note per
// character, whitespace as rests. The output is not speech, but it is valid
// PCM audio of deterministic length, which keeps text-to-speech available
// when every real voice is down.
type WaveformSynthesizer struct {
	priority int
}

// NewWaveformSynthesizer creates the synthesizer at the given chain priority.
func NewWaveformSynthesizer(priority int) *WaveformSynthesizer {
	return &WaveformSynthesizer{priority: priority}
}

func (s *WaveformSynthesizer) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:            "local-waveform",
		Name:          "Waveform Synthesizer",
		Capability:    model.CapabilityTextToSpeech,
		Priority:      s.priority,
		Timeout:       15 * time.Second,
		Deterministic: true,
	}
}

func (s *WaveformSynthesizer) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	text := request.InputText()
	if strings.TrimSpace(text) == "" {
		return model.Failure(model.FailureInvalidOutput, "synthesizer received empty text")
	}

	note := noteDuration
	if request.Rate == model.RateSlow {
		note *= 2
	}
	samplesPerNote := int(note.Seconds() * synthSampleRate)

	runes := []rune(text)
	samples := make([]float64, 0, len(runes)*samplesPerNote)
	for _, r := range runes {
		samples = appendNote(samples, toneFor(r), samplesPerNote)
	}
	return model.SuccessAudio(audio.EncodeWAV(samples, synthSampleRate))
}

// toneFor maps a character onto a chromatic scale; whitespace rests at 0.
func toneFor(r rune) float64 {
	if unicode.IsSpace(r) {
		return 0
	}
	semitone := int(unicode.ToLower(r)) % 24
	return baseFrequency * math.Pow(2, float64(semitone)/12.0)
}

// appendNote writes one note with a short linear attack and release so note
// boundaries do not click.
func appendNote(samples []float64, frequency float64, length int) []float64 {
	if frequency == 0 {
		return append(samples, make([]float64, length)...)
	}
	edge := length / 10
	for i := 0; i < length; i++ {
		v := toneAmplitude * math.Sin(2*math.Pi*frequency*float64(i)/synthSampleRate)
		if edge > 0 {
			if i < edge {
				v *= float64(i) / float64(edge)
			}
			if length-1-i < edge {
				v *= float64(length-1-i) / float64(edge)
			}
		}
		samples = append(samples, v)
	}
	return samples
}
