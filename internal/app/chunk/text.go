// Package chunk splits oversized capability inputs into ordered chunks and
// merges per-chunk outputs back together. Text splitting prefers sentence
// boundaries, then whitespace, and only cuts inside a word when a single word
// exceeds the limit. Splitting partitions the input exactly, so merging the
// spans of any text reproduces it byte for byte.
package chunk

import (
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "polycap/internal/app/errors"
	"polycap/internal/app/model"
)

// MinChunkChars is the floor below which a text chunk is not worth sending to
// an engine; the orchestrator passes such chunks through with a warning.
const MinChunkChars = 50

// SplitText cuts text into chunks of at most limit bytes each. Inputs that fit
// yield exactly one span. overlap > 0 prepends up to that many bytes of the
// previous chunk's tail to each following chunk; the prefix never crosses a
// rune boundary and is stripped again on merge.
func SplitText(text string, limit int, overlap int) ([]model.ChunkSpan, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Wrap(apperrors.ErrEmptyInput, "split text")
	}
	if limit <= 0 {
		return nil, apperrors.InvalidField("chunk limit", "must be positive")
	}
	if overlap < 0 {
		overlap = 0
	}

	if len(text) <= limit {
		return []model.ChunkSpan{{Index: 0, Start: 0, End: len(text), Text: text}}, nil
	}

	bounds := chunkBounds(text, limit)

	spans := make([]model.ChunkSpan, 0, len(bounds))
	start := 0
	for i, end := range bounds {
		span := model.ChunkSpan{Index: i, Start: start, End: end, Text: text[start:end]}
		if overlap > 0 && i > 0 {
			prefixStart := runeAlignedStart(text, start-overlap)
			span.Text = text[prefixStart:end]
			span.Overlap = start - prefixStart
			span.Overlapped = span.Overlap > 0
		}
		spans = append(spans, span)
		start = end
	}
	return spans, nil
}

// Sentences splits text into its sentences, trailing whitespace attached, so
// concatenating the result reproduces the input. Text without terminators is
// one sentence.
func Sentences(text string) []string {
	if text == "" {
		return nil
	}
	ends := sentenceEnds(text)
	sentences := make([]string, 0, len(ends))
	start := 0
	for _, end := range ends {
		sentences = append(sentences, text[start:end])
		start = end
	}
	return sentences
}

// chunkBounds returns the ascending chunk end offsets covering the whole text.
func chunkBounds(text string, limit int) []int {
	var bounds []int
	ends := sentenceEnds(text)

	start := 0
	cur := start
	for _, end := range ends {
		if end-start > limit {
			if cur > start {
				bounds = append(bounds, cur)
				start = cur
			}
			// Sentence alone may still be oversized
			for end-start > limit {
				cut := wordCut(text, start, start+limit)
				bounds = append(bounds, cut)
				start = cut
			}
		}
		cur = end
	}
	if cur > start {
		bounds = append(bounds, cur)
	}
	if n := len(bounds); n == 0 || bounds[n-1] < len(text) {
		bounds = append(bounds, len(text))
	}
	return bounds
}

// sentenceEnds returns the byte offsets just past each sentence, trailing
// whitespace included so concatenating sentences reproduces the text. The
// final offset is always len(text).
func sentenceEnds(text string) []int {
	var ends []int
	inTerminator := false
	for i, r := range text {
		switch {
		case isSentenceTerminator(r):
			inTerminator = true
		case inTerminator && unicode.IsSpace(r):
			// Consume the whole whitespace run
			continue
		case inTerminator:
			ends = append(ends, i)
			inTerminator = false
		}
	}
	if n := len(ends); n == 0 || ends[n-1] < len(text) {
		ends = append(ends, len(text))
	}
	return ends
}

func isSentenceTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '…', '。', '！', '？':
		return true
	}
	return false
}

// wordCut finds a cut position in (start, max] that lands on whitespace when
// possible, so the next chunk leads with the space. A single word longer than
// the window is cut at the last rune boundary not past max.
func wordCut(text string, start, max int) int {
	if max >= len(text) {
		return len(text)
	}
	for i := max; i > start; i-- {
		if utf8.RuneStart(text[i]) {
			r, _ := utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) {
				return i
			}
		}
	}
	cut := runeAlignedStart(text, max)
	if cut <= start {
		_, size := utf8.DecodeRuneInString(text[start:])
		cut = start + size
	}
	return cut
}

// runeAlignedStart moves pos back to the nearest rune boundary.
func runeAlignedStart(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(text) {
		return len(text)
	}
	for pos > 0 && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}
