package audio

import "math"

// RMS returns the root mean square energy of the samples.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// SilentSpan is a run of consecutive low-energy samples.
type SilentSpan struct {
	Start int // sample offset, inclusive
	End   int // sample offset, exclusive
}

// Mid returns the midpoint of the span, the natural cut position.
func (s SilentSpan) Mid() int {
	return s.Start + (s.End-s.Start)/2
}

// FindSilentSpans scans the signal in fixed windows and returns every run of
// windows whose RMS stays below threshold for at least minGap samples.
func FindSilentSpans(samples []float64, window int, threshold float64, minGap int) []SilentSpan {
	if window <= 0 || len(samples) == 0 {
		return nil
	}

	var spans []SilentSpan
	runStart := -1
	for off := 0; off < len(samples); off += window {
		end := off + window
		if end > len(samples) {
			end = len(samples)
		}
		quiet := RMS(samples[off:end]) < threshold
		switch {
		case quiet && runStart < 0:
			runStart = off
		case !quiet && runStart >= 0:
			if off-runStart >= minGap {
				spans = append(spans, SilentSpan{Start: runStart, End: off})
			}
			runStart = -1
		}
	}
	if runStart >= 0 && len(samples)-runStart >= minGap {
		spans = append(spans, SilentSpan{Start: runStart, End: len(samples)})
	}
	return spans
}

// VoicedSegments counts the runs of above-threshold energy, a rough proxy for
// how many utterances the signal contains.
func VoicedSegments(samples []float64, window int, threshold float64) int {
	if window <= 0 || len(samples) == 0 {
		return 0
	}
	count := 0
	voiced := false
	for off := 0; off < len(samples); off += window {
		end := off + window
		if end > len(samples) {
			end = len(samples)
		}
		if RMS(samples[off:end]) >= threshold {
			if !voiced {
				count++
			}
			voiced = true
		} else {
			voiced = false
		}
	}
	return count
}
