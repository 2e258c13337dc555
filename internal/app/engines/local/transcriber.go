package local

import (
	"context"
	"fmt"
	"time"

	"polycap/internal/app/audio"
	"polycap/internal/app/model"
)

// voicedThreshold is the RMS floor above which a window counts as speech.
const voicedThreshold = 0.015

// PatternTranscriber synthesizes a deterministic placeholder transcript from
// measurable audio features. It exists so speech-to-text always terminates
// with output that is honest about being produced offline.
type PatternTranscriber struct {
	priority int
}

// NewPatternTranscriber creates the transcriber at the given chain priority.
func NewPatternTranscriber(priority int) *PatternTranscriber {
	return &PatternTranscriber{priority: priority}
}

func (t *PatternTranscriber) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:            "local-pattern",
		Name:          "Pattern Transcriber",
		Capability:    model.CapabilitySpeechToText,
		Priority:      t.priority,
		Timeout:       10 * time.Second,
		Deterministic: true,
	}
}

func (t *PatternTranscriber) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	if request.Audio == nil || len(request.Audio.Samples) == 0 {
		return model.Failure(model.FailureInvalidOutput, "transcriber received no audio")
	}

	samples := request.Audio.Samples
	rate := request.Audio.SampleRate

	seconds := audio.Duration(samples, rate)
	window := rate / 50
	if window < 1 {
		window = 1
	}
	segments := audio.VoicedSegments(samples, window, voicedThreshold)

	transcript := fmt.Sprintf("[offline transcript] %s recording with %d spoken segment%s",
		durationBucket(seconds), segments, pluralSuffix(segments))
	return model.SuccessText(transcript)
}

func durationBucket(seconds float64) string {
	switch {
	case seconds < 1:
		return "sub-second"
	case seconds < 10:
		return "short"
	case seconds < 60:
		return "medium"
	case seconds < 600:
		return "long"
	default:
		return "extended"
	}
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
