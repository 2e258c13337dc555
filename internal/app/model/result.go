package model

import "time"

// ResultStatus is the terminal disposition of a capability request.
type ResultStatus string

const (
	// StatusFullSuccess means every chunk was served by its first-choice engine.
	StatusFullSuccess ResultStatus = "full_success"
	// StatusDegradedSuccess means at least one chunk fell back to a
	// lower-priority engine but every chunk produced output.
	StatusDegradedSuccess ResultStatus = "degraded_success"
	// StatusFailed means some chunk exhausted its whole engine chain, or the
	// request was cancelled before completion.
	StatusFailed ResultStatus = "failed"
)

// ChunkProvenance records how one chunk was resolved.
type ChunkProvenance struct {
	ChunkIndex       int      `json:"chunkIndex"`
	AttemptedEngines []string `json:"attemptedEngines"` // IDs in attempt order
	SuccessfulEngine string   `json:"successfulEngine,omitempty"`
	Attempts         int      `json:"attempts"`
	Degraded         bool     `json:"degraded,omitempty"`
}

// CapabilityResult is the merged output of one capability request.
type CapabilityResult struct {
	Status ResultStatus `json:"status"`

	// Exactly one payload is set on success, matching the capability.
	Text  string `json:"text,omitempty"`
	Audio []byte `json:"audio,omitempty"`

	// DetectedLanguage is the resolved source language (hint or detection).
	DetectedLanguage string `json:"detectedLanguage,omitempty"`

	Provenance []ChunkProvenance `json:"engineProvenance"`
	Warnings   []string          `json:"warnings,omitempty"`

	ProcessingTime time.Duration `json:"processingTime,omitempty"`
}

// Degraded reports whether any chunk needed a fallback engine.
func (r *CapabilityResult) Degraded() bool {
	for _, p := range r.Provenance {
		if p.Degraded {
			return true
		}
	}
	return false
}
