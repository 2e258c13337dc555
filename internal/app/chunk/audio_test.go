package chunk

import (
	"math"
	"testing"
	"time"
)

func tone(rate int, seconds float64, amp float64) []float64 {
	n := int(seconds * float64(rate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
	}
	return out
}

func silence(rate int, seconds float64) []float64 {
	return make([]float64, int(seconds*float64(rate)))
}

func TestSplitAudioSingleChunk(t *testing.T) {
	rate := 16000
	samples := tone(rate, 5, 0.5)

	chunks, err := SplitAudio(samples, rate, AudioChunkConfig{})
	if err != nil {
		t.Fatalf("SplitAudio failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk for 5s audio under the 30s cap, got %d", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].End != len(samples) {
		t.Errorf("Expected chunk covering whole signal, got [%d,%d]", chunks[0].Start, chunks[0].End)
	}
}

func TestSplitAudioEmptyInput(t *testing.T) {
	if _, err := SplitAudio(nil, 16000, AudioChunkConfig{}); err == nil {
		t.Error("Expected error for empty samples")
	}
	if _, err := SplitAudio(tone(16000, 1, 0.5), 0, AudioChunkConfig{}); err == nil {
		t.Error("Expected error for zero sample rate")
	}
}

func TestSplitAudioCutsAtSilence(t *testing.T) {
	rate := 8000
	cfg := AudioChunkConfig{MaxWindow: 4 * time.Second}

	// 3s speech, 1s silence, 3s speech: the cap forces a cut and the gap
	// midpoint is the natural place.
	samples := append(tone(rate, 3, 0.5), silence(rate, 1)...)
	samples = append(samples, tone(rate, 3, 0.5)...)

	chunks, err := SplitAudio(samples, rate, cfg)
	if err != nil {
		t.Fatalf("SplitAudio failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	cut := chunks[0].End
	if cut <= 3*rate || cut >= 4*rate {
		t.Errorf("Expected cut inside the silent second [%d,%d], got %d", 3*rate, 4*rate, cut)
	}
	if chunks[1].Start != cut {
		t.Errorf("Chunks must be contiguous: first ends %d, second starts %d", cut, chunks[1].Start)
	}
}

func TestSplitAudioFixedWindowsWithoutGaps(t *testing.T) {
	rate := 8000
	cfg := AudioChunkConfig{MaxWindow: 2 * time.Second, Overlap: 250 * time.Millisecond}
	samples := tone(rate, 7, 0.5) // continuous speech, no silence

	chunks, err := SplitAudio(samples, rate, cfg)
	if err != nil {
		t.Fatalf("SplitAudio failed: %v", err)
	}
	if len(chunks) != 4 {
		t.Fatalf("Expected 4 fixed windows for 7s at 2s cap, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("Chunk %d carries index %d", i, c.Index)
		}
		if i == 0 {
			if c.Overlapped {
				t.Error("First chunk must not carry overlap")
			}
			continue
		}
		if !c.Overlapped || c.Overlap != rate/4 {
			t.Errorf("Chunk %d overlap = %d, want %d", i, c.Overlap, rate/4)
		}
		if len(c.Samples) != c.End-c.Start+c.Overlap {
			t.Errorf("Chunk %d sample count %d does not match span plus overlap", i, len(c.Samples))
		}
	}
	last := chunks[len(chunks)-1]
	if last.End != len(samples) {
		t.Errorf("Last chunk ends at %d, want %d", last.End, len(samples))
	}
}

func TestSplitAudioContiguousCoverage(t *testing.T) {
	rate := 8000
	samples := append(tone(rate, 10, 0.5), silence(rate, 2)...)
	samples = append(samples, tone(rate, 10, 0.5)...)

	chunks, err := SplitAudio(samples, rate, AudioChunkConfig{MaxWindow: 6 * time.Second})
	if err != nil {
		t.Fatalf("SplitAudio failed: %v", err)
	}
	prev := 0
	for _, c := range chunks {
		if c.Start != prev {
			t.Errorf("Gap in coverage: chunk %d starts %d after previous end %d", c.Index, c.Start, prev)
		}
		prev = c.End
	}
	if prev != len(samples) {
		t.Errorf("Coverage ends at %d, want %d", prev, len(samples))
	}
}
