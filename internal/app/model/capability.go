package model

// Capability identifies one of the content capabilities the module orchestrates.
type Capability string

const (
	CapabilitySummarize    Capability = "summarize"
	CapabilityTranslate    Capability = "translate"
	CapabilitySpeechToText Capability = "speech_to_text"
	CapabilityTextToSpeech Capability = "text_to_speech"
)

// LengthClass selects a target summary size when no explicit max length is given.
type LengthClass string

const (
	LengthShort  LengthClass = "short"
	LengthMedium LengthClass = "medium"
	LengthLong   LengthClass = "long"
)

// SummaryStyle shapes how a summary is rendered.
type SummaryStyle string

const (
	StyleParagraph SummaryStyle = "paragraph"
	StyleBullets   SummaryStyle = "bullets"
	StyleAbstract  SummaryStyle = "abstract"
)

// SpeechRate controls synthesis speed for text-to-speech.
type SpeechRate string

const (
	RateNormal SpeechRate = "normal"
	RateSlow   SpeechRate = "slow"
)

// InputFormat declares how text payload content should be interpreted.
type InputFormat string

const (
	FormatPlain InputFormat = "plain"
	FormatHTML  InputFormat = "html"
)

// TextPayload carries textual input for Summarize, Translate and TextToSpeech.
type TextPayload struct {
	Content string      `json:"content"`
	Format  InputFormat `json:"format,omitempty"` // empty means plain
}

// AudioPayload carries PCM input for SpeechToText.
type AudioPayload struct {
	Samples    []float64 `json:"samples"`
	SampleRate int       `json:"sample_rate"`
}

// CapabilityRequest is the single input type for every capability. Exactly one
// of Text or Audio is set, matching the capability.
type CapabilityRequest struct {
	// Core fields
	Capability Capability    `json:"capability"`
	Text       *TextPayload  `json:"text,omitempty"`
	Audio      *AudioPayload `json:"audio,omitempty"`

	// Language hints; ISO 639-1 codes. Empty SourceLanguage means auto-detect.
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`

	// Summarize options
	MaxLength   int          `json:"max_length,omitempty"` // characters; 0 means derive from LengthClass
	LengthClass LengthClass  `json:"length_class,omitempty"`
	Style       SummaryStyle `json:"style,omitempty"`

	// TextToSpeech options
	Rate SpeechRate `json:"rate,omitempty"`

	// Orchestration overrides
	ChunkLimit int `json:"chunk_limit,omitempty"` // 0 means capability default

	Metadata map[string]string `json:"metadata,omitempty"`
}

// MaxLengthFor resolves the effective summary length cap: an explicit
// MaxLength wins, otherwise the length class maps to a default.
func (r *CapabilityRequest) MaxLengthFor() int {
	if r.MaxLength > 0 {
		return r.MaxLength
	}
	switch r.LengthClass {
	case LengthShort:
		return 100
	case LengthLong:
		return 500
	default:
		return 250
	}
}

// InputText returns the text content, empty when the request carries audio.
func (r *CapabilityRequest) InputText() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Content
}

// IsValidCapability checks whether the given name is a known capability.
func IsValidCapability(name string) bool {
	switch Capability(name) {
	case CapabilitySummarize, CapabilityTranslate, CapabilitySpeechToText, CapabilityTextToSpeech:
		return true
	default:
		return false
	}
}

// TakesText reports whether the capability consumes a text payload.
func (c Capability) TakesText() bool {
	return c == CapabilitySummarize || c == CapabilityTranslate || c == CapabilityTextToSpeech
}

// TakesAudio reports whether the capability consumes an audio payload.
func (c Capability) TakesAudio() bool {
	return c == CapabilitySpeechToText
}
