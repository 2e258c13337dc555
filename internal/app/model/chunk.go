package model

// ChunkSpan is one ordered slice of a text input. Offsets are byte positions
// into the original content, excluding any overlap prefix.
type ChunkSpan struct {
	Index int `json:"index"`
	Start int `json:"start"`
	End   int `json:"end"`

	// Text is the chunk content handed to engines, including the overlap
	// prefix when Overlapped is set. Overlap is the prefix length in bytes so
	// merging can strip it exactly.
	Text       string `json:"text"`
	Overlapped bool   `json:"overlapped,omitempty"`
	Overlap    int    `json:"overlap,omitempty"`
}

// Body returns the chunk content without the overlap prefix.
func (s ChunkSpan) Body() string {
	if s.Overlap > 0 && s.Overlap <= len(s.Text) {
		return s.Text[s.Overlap:]
	}
	return s.Text
}

// AudioChunk is one ordered window of PCM samples. Offsets are sample
// positions into the original signal, excluding any overlap prefix.
type AudioChunk struct {
	Index int `json:"index"`
	Start int `json:"start"`
	End   int `json:"end"`

	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
	Overlapped bool      `json:"overlapped,omitempty"`
	Overlap    int       `json:"overlap,omitempty"` // leading overlap samples
}

// Duration returns the chunk length in seconds, overlap included.
func (c AudioChunk) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}
