package chunk

import (
	"time"

	"polycap/internal/app/audio"
	apperrors "polycap/internal/app/errors"
	"polycap/internal/app/model"
)

// AudioChunkConfig tunes how a PCM signal is windowed.
type AudioChunkConfig struct {
	// MaxWindow caps one chunk's duration, overlap excluded.
	MaxWindow time.Duration
	// Overlap is prepended to every chunk after the first.
	Overlap time.Duration
	// SilenceThreshold is the RMS floor below which a window counts as quiet.
	SilenceThreshold float64
	// MinSilence is the shortest quiet run treated as a gap worth cutting at.
	MinSilence time.Duration
}

// DefaultAudioChunkConfig returns the tuning used when callers pass a zero
// config.
func DefaultAudioChunkConfig() AudioChunkConfig {
	return AudioChunkConfig{
		MaxWindow:        30 * time.Second,
		Overlap:          500 * time.Millisecond,
		SilenceThreshold: 0.015,
		MinSilence:       300 * time.Millisecond,
	}
}

func (c AudioChunkConfig) withDefaults() AudioChunkConfig {
	d := DefaultAudioChunkConfig()
	if c.MaxWindow <= 0 {
		c.MaxWindow = d.MaxWindow
	}
	if c.Overlap < 0 {
		c.Overlap = 0
	}
	if c.SilenceThreshold <= 0 {
		c.SilenceThreshold = d.SilenceThreshold
	}
	if c.MinSilence <= 0 {
		c.MinSilence = d.MinSilence
	}
	return c
}

// SplitAudio cuts a PCM signal into ordered chunks, preferring silence gaps
// and falling back to fixed windows when a stretch of speech has none. Audio
// shorter than the window cap yields a single chunk.
func SplitAudio(samples []float64, sampleRate int, cfg AudioChunkConfig) ([]model.AudioChunk, error) {
	if len(samples) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrEmptyInput, "split audio")
	}
	if sampleRate <= 0 {
		return nil, apperrors.InvalidField("sample rate", "must be positive")
	}
	cfg = cfg.withDefaults()

	maxSamples := int(cfg.MaxWindow.Seconds() * float64(sampleRate))
	if maxSamples < 1 {
		maxSamples = 1
	}
	if len(samples) <= maxSamples {
		return []model.AudioChunk{{
			Index:      0,
			Start:      0,
			End:        len(samples),
			Samples:    samples,
			SampleRate: sampleRate,
		}}, nil
	}

	window := sampleRate / 50 // 20ms energy windows
	if window < 1 {
		window = 1
	}
	minGap := int(cfg.MinSilence.Seconds() * float64(sampleRate))
	gaps := audio.FindSilentSpans(samples, window, cfg.SilenceThreshold, minGap)

	overlapSamples := int(cfg.Overlap.Seconds() * float64(sampleRate))

	var chunks []model.AudioChunk
	start := 0
	for start < len(samples) {
		end := start + maxSamples
		if end >= len(samples) {
			end = len(samples)
		} else if cut := lastGapMid(gaps, start, end); cut > start {
			end = cut
		}

		c := model.AudioChunk{
			Index:      len(chunks),
			Start:      start,
			End:        end,
			Samples:    samples[start:end],
			SampleRate: sampleRate,
		}
		if overlapSamples > 0 && start > 0 {
			prefixStart := start - overlapSamples
			if prefixStart < 0 {
				prefixStart = 0
			}
			c.Samples = samples[prefixStart:end]
			c.Overlap = start - prefixStart
			c.Overlapped = c.Overlap > 0
		}
		chunks = append(chunks, c)
		start = end
	}
	return chunks, nil
}

// lastGapMid returns the midpoint of the latest silent gap inside (start, end],
// or start when no gap qualifies.
func lastGapMid(gaps []audio.SilentSpan, start, end int) int {
	cut := start
	for _, g := range gaps {
		mid := g.Mid()
		if mid > start && mid <= end {
			cut = mid
		}
	}
	return cut
}
