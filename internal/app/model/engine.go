package model

import "time"

// FailureKind classifies why an engine attempt did not produce a usable result.
type FailureKind string

const (
	FailureTimeout             FailureKind = "timeout"
	FailureUnavailable         FailureKind = "unavailable"
	FailureQuotaExceeded       FailureKind = "quota_exceeded"
	FailureInvalidOutput       FailureKind = "invalid_output"
	FailureUnsupportedLanguage FailureKind = "unsupported_language"
)

// EngineDescriptor is the registry-facing identity of an engine.
type EngineDescriptor struct {
	// Basic info
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Capability Capability `json:"capability"`

	// Selection
	Priority int           `json:"priority"` // lower rank is tried first
	Timeout  time.Duration `json:"timeout"`  // per attempt

	// A deterministic engine terminates every chain: same input, same output,
	// and it must not fail on valid input.
	Deterministic bool `json:"deterministic"`

	// Supported ISO 639-1 codes. Empty means every language.
	Languages []string `json:"languages,omitempty"`
}

// SupportsLanguage reports whether the engine accepts the given language.
// The undetermined code "und" only matches engines open to every language.
func (d EngineDescriptor) SupportsLanguage(lang string) bool {
	if len(d.Languages) == 0 {
		return true
	}
	if lang == "" {
		return true
	}
	for _, l := range d.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// EngineOutcome is the result of a single engine attempt. Kind is empty on
// success; exactly one of Text or Audio carries the payload then.
type EngineOutcome struct {
	Text  string `json:"text,omitempty"`
	Audio []byte `json:"audio,omitempty"`

	Kind    FailureKind `json:"kind,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK reports whether the attempt succeeded.
func (o EngineOutcome) OK() bool {
	return o.Kind == ""
}

// SuccessText builds a successful outcome carrying text.
func SuccessText(text string) EngineOutcome {
	return EngineOutcome{Text: text}
}

// SuccessAudio builds a successful outcome carrying encoded audio.
func SuccessAudio(audio []byte) EngineOutcome {
	return EngineOutcome{Audio: audio}
}

// Failure builds a failed outcome of the given kind.
func Failure(kind FailureKind, message string) EngineOutcome {
	return EngineOutcome{Kind: kind, Message: message}
}
