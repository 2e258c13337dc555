package chunk

import (
	"strings"
	"testing"

	"polycap/internal/app/model"
)

func TestSplitTextSingleChunk(t *testing.T) {
	text := strings.Repeat("word ", 60) // 300 bytes
	spans, err := SplitText(text, 1000, 0)
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("Expected 1 chunk for input under the limit, got %d", len(spans))
	}
	if spans[0].Index != 0 || spans[0].Start != 0 || spans[0].End != len(text) {
		t.Errorf("Expected span covering whole input, got %+v", spans[0])
	}
	if spans[0].Text != text {
		t.Error("Expected span text to equal the input")
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := SplitText(text, 100, 0); err == nil {
			t.Errorf("Expected error for blank input %q", text)
		}
	}
}

func TestSplitTextInvalidLimit(t *testing.T) {
	if _, err := SplitText("some text", 0, 0); err == nil {
		t.Error("Expected error for zero limit")
	}
}

func TestSplitTextSentenceBoundaries(t *testing.T) {
	text := "First sentence is here. Second sentence follows. Third one closes it."
	spans, err := SplitText(text, 30, 0)
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}
	if len(spans) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(spans))
	}
	for i, s := range spans {
		if len(s.Text) > 30 {
			t.Errorf("Chunk %d exceeds limit: %d bytes", i, len(s.Text))
		}
	}
	// Boundaries land between sentences, not inside words
	for _, s := range spans[:len(spans)-1] {
		tail := s.Text[len(s.Text)-1]
		if tail != '.' && tail != ' ' {
			t.Errorf("Chunk ends mid-word: %q", s.Text)
		}
	}
}

func TestSplitTextLongSentenceFallsBackToWords(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 40)) // one 199-byte "sentence"
	spans, err := SplitText(text, 50, 0)
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}
	if len(spans) < 4 {
		t.Fatalf("Expected at least 4 chunks, got %d", len(spans))
	}
	for i, s := range spans {
		if len(s.Text) > 50 {
			t.Errorf("Chunk %d exceeds limit: %d bytes", i, len(s.Text))
		}
		if strings.Contains(strings.TrimSpace(s.Text), "wor ") {
			t.Errorf("Chunk %d split inside a word: %q", i, s.Text)
		}
	}
}

func TestSplitTextGiantWord(t *testing.T) {
	text := strings.Repeat("x", 120)
	spans, err := SplitText(text, 50, 0)
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}
	if len(spans) != 3 {
		t.Fatalf("Expected 3 chunks for a 120-byte word at limit 50, got %d", len(spans))
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := "One two three four. Five six seven eight. Nine ten eleven twelve."
	spans, err := SplitText(text, 25, 10)
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}
	if len(spans) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(spans))
	}
	if spans[0].Overlapped || spans[0].Overlap != 0 {
		t.Error("First chunk must not carry overlap")
	}
	for _, s := range spans[1:] {
		if !s.Overlapped || s.Overlap == 0 {
			t.Errorf("Chunk %d missing overlap", s.Index)
			continue
		}
		if s.Overlap > 10 {
			t.Errorf("Chunk %d overlap %d exceeds requested 10", s.Index, s.Overlap)
		}
		prefix := s.Text[:s.Overlap]
		if !strings.HasSuffix(text[:s.Start], prefix) {
			t.Errorf("Chunk %d overlap %q is not the previous tail", s.Index, prefix)
		}
		if s.Body() != text[s.Start:s.End] {
			t.Errorf("Chunk %d body does not match its span", s.Index)
		}
	}
}

func TestSplitMergeRoundTrip(t *testing.T) {
	inputs := []string{
		"Short text.",
		"First sentence is here. Second sentence follows. Third one closes it all out.",
		strings.Repeat("All work and no play makes a dull day. ", 40),
		strings.Repeat("supercalifragilistic", 20),
		"Mixed content with unicode: héllo wörld. 你好。 Done!",
		"no terminators at all just a stream of words " + strings.Repeat("flow ", 50),
	}
	limits := []int{10, 25, 50, 100, 1000}
	overlaps := []int{0, 8}

	for _, text := range inputs {
		for _, limit := range limits {
			for _, overlap := range overlaps {
				spans, err := SplitText(text, limit, overlap)
				if err != nil {
					t.Fatalf("SplitText(limit=%d) failed: %v", limit, err)
				}
				pieces := make([]string, len(spans))
				for i, s := range spans {
					pieces[i] = s.Text
				}
				merged, err := MergeText(spans, pieces)
				if err != nil {
					t.Fatalf("MergeText failed: %v", err)
				}
				if merged != text {
					t.Errorf("Round trip broke at limit=%d overlap=%d:\nwant %q\ngot  %q",
						limit, overlap, text, merged)
				}
			}
		}
	}
}

func TestMergeTextOutOfOrder(t *testing.T) {
	text := "Alpha beta gamma. Delta epsilon zeta. Eta theta iota."
	spans, err := SplitText(text, 25, 0)
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}
	if len(spans) < 3 {
		t.Fatalf("Expected at least 3 chunks, got %d", len(spans))
	}

	// Present the pieces in reverse completion order
	rev := make([]string, len(spans))
	revSpans := make([]model.ChunkSpan, len(spans))
	for i := range spans {
		j := len(spans) - 1 - i
		revSpans[i] = spans[j]
		rev[i] = spans[j].Text
	}
	merged, err := MergeText(revSpans, rev)
	if err != nil {
		t.Fatalf("MergeText failed: %v", err)
	}
	if merged != text {
		t.Errorf("Expected order restored by chunk index:\nwant %q\ngot  %q", text, merged)
	}
}

func TestMergeTextMismatch(t *testing.T) {
	spans, _ := SplitText("Some text to split. More text here.", 20, 0)
	if _, err := MergeText(spans, []string{"only one"}); err == nil {
		t.Error("Expected error for span/piece count mismatch")
	}
}

func TestMergeTranscripts(t *testing.T) {
	cases := []struct {
		name   string
		pieces []string
		want   string
	}{
		{"joins with single space", []string{"hello world", "second part"}, "hello world second part"},
		{"drops blanks", []string{"start", "", "  ", "end"}, "start end"},
		{"trims pieces", []string{" padded ", "tail "}, "padded tail"},
		{"empty input", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MergeTranscripts(tc.pieces); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
