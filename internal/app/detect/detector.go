// Package detect resolves the language of text inputs. Detection only runs
// when a request carries no explicit language hint; hints always win.
package detect

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Undetermined is returned when no language clears the confidence floor.
const Undetermined = "und"

// DefaultMinConfidence is the floor below which detection is not trusted.
const DefaultMinConfidence = 0.40

// Detector resolves an ISO 639-1 code and a confidence for a piece of text.
type Detector interface {
	Detect(text string) (lang string, confidence float64)
}

// WhatlangDetector is the trigram-based default detector.
type WhatlangDetector struct {
	minConfidence float64
}

// NewWhatlangDetector builds a detector with the given confidence floor;
// floors outside (0, 1] fall back to the default.
func NewWhatlangDetector(minConfidence float64) *WhatlangDetector {
	if minConfidence <= 0 || minConfidence > 1 {
		minConfidence = DefaultMinConfidence
	}
	return &WhatlangDetector{minConfidence: minConfidence}
}

// Detect returns the detected ISO 639-1 code, or Undetermined when the text is
// blank, the script is unknown, or confidence stays under the floor. The raw
// confidence is returned either way.
func (d *WhatlangDetector) Detect(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return Undetermined, 0
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" || info.Confidence < d.minConfidence {
		return Undetermined, info.Confidence
	}
	return code, info.Confidence
}
