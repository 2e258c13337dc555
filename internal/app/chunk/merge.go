package chunk

import (
	"sort"
	"strings"

	apperrors "polycap/internal/app/errors"
	"polycap/internal/app/model"
)

// MergeText reassembles per-chunk outputs in chunk-index order, no matter what
// order the pieces resolved in. pieces[i] must correspond to spans[i]. When a
// span carried an overlap prefix and its piece still begins with that prefix,
// the prefix is dropped so repeated text does not survive the merge.
func MergeText(spans []model.ChunkSpan, pieces []string) (string, error) {
	if len(spans) != len(pieces) {
		return "", apperrors.Newf("merge mismatch: %d spans, %d pieces", len(spans), len(pieces))
	}
	if len(spans) == 0 {
		return "", apperrors.Wrap(apperrors.ErrEmptyInput, "merge text")
	}

	type part struct {
		span  model.ChunkSpan
		piece string
	}
	parts := make([]part, len(spans))
	for i := range spans {
		parts[i] = part{span: spans[i], piece: pieces[i]}
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].span.Index < parts[j].span.Index })

	var b strings.Builder
	for _, p := range parts {
		piece := p.piece
		if p.span.Overlap > 0 && p.span.Overlap <= len(p.span.Text) {
			prefix := p.span.Text[:p.span.Overlap]
			if strings.HasPrefix(piece, prefix) {
				piece = piece[len(prefix):]
			}
		}
		b.WriteString(piece)
	}
	return b.String(), nil
}

// MergeTranscripts joins per-chunk transcripts with a single space, dropping
// blank pieces. Transcripts have no positional alignment with the source
// audio, so a plain ordered join is the whole contract.
func MergeTranscripts(pieces []string) string {
	kept := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
