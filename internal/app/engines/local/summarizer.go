// Package local provides the deterministic engines that terminate every
// fallback chain. They run pure Go, never touch the network and never fail on
// valid input, trading output quality for guaranteed availability.
package local

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"polycap/internal/app/chunk"
	"polycap/internal/app/model"
)

// extractRatio is the share of sentences an extractive summary keeps.
const extractRatio = 0.3

// abstractLead opens abstract-style summaries with a framing sentence.
const abstractLead = "In brief, the source makes these points."

// signalWords mark sentences likely to carry the text's main points.
var signalWords = []string{"important", "significant", "key", "main", "primary", "essential", "crucial"}

// ExtractiveSummarizer keeps the structurally strongest sentences of the
// input: the opening, the close and the highest-signal middle sentences.
type ExtractiveSummarizer struct {
	priority int
}

// NewExtractiveSummarizer creates the summarizer at the given chain priority.
func NewExtractiveSummarizer(priority int) *ExtractiveSummarizer {
	return &ExtractiveSummarizer{priority: priority}
}

func (s *ExtractiveSummarizer) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:            "local-extractive",
		Name:          "Extractive Summarizer",
		Capability:    model.CapabilitySummarize,
		Priority:      s.priority,
		Timeout:       5 * time.Second,
		Deterministic: true,
	}
}

func (s *ExtractiveSummarizer) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	text := strings.TrimSpace(request.InputText())
	if text == "" {
		return model.Failure(model.FailureInvalidOutput, "summarizer received empty text")
	}

	sentences := trimmedSentences(text)
	selected := selectSentences(sentences)
	summary := renderSummary(selected, request.Style)
	summary = truncateAtWord(summary, request.MaxLengthFor())
	return model.SuccessText(summary)
}

func trimmedSentences(text string) []string {
	raw := chunk.Sentences(text)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// selectSentences keeps the first and last sentence plus the best-scoring
// middles, up to extractRatio of the sentence count. Ties keep earlier
// sentences, so output order is stable.
func selectSentences(sentences []string) []string {
	if len(sentences) <= 2 {
		return sentences
	}

	budget := int(math.Ceil(float64(len(sentences)) * extractRatio))
	if budget < 2 {
		budget = 2
	}
	middles := budget - 2

	type scored struct {
		index int
		score int
	}
	candidates := make([]scored, 0, len(sentences)-2)
	for i := 1; i < len(sentences)-1; i++ {
		candidates = append(candidates, scored{index: i, score: signalScore(sentences[i])})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > middles {
		candidates = candidates[:middles]
	}

	keep := map[int]bool{0: true, len(sentences) - 1: true}
	for _, c := range candidates {
		keep[c.index] = true
	}

	selected := make([]string, 0, len(keep))
	for i, sentence := range sentences {
		if keep[i] {
			selected = append(selected, sentence)
		}
	}
	return selected
}

func signalScore(sentence string) int {
	lower := strings.ToLower(sentence)
	score := 0
	for _, w := range signalWords {
		score += strings.Count(lower, w)
	}
	return score
}

func renderSummary(sentences []string, style model.SummaryStyle) string {
	switch style {
	case model.StyleBullets:
		lines := make([]string, 0, len(sentences))
		for _, s := range sentences {
			lines = append(lines, "- "+s)
		}
		return strings.Join(lines, "\n")
	case model.StyleAbstract:
		return abstractLead + " " + strings.Join(sentences, " ")
	default:
		return strings.Join(sentences, " ")
	}
}

// truncateAtWord caps text at maxRunes, cutting back to the previous word
// boundary when one exists.
func truncateAtWord(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	cut := maxRunes
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = maxRunes
	}
	return strings.TrimSpace(string(runes[:cut]))
}
