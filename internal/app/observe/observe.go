// Package observe carries per-attempt observability events from the attempt
// executor to pluggable sinks. Emission is fire-and-forget: sinks must not
// block, and a sink panic never reaches the attempt path.
package observe

import (
	"sync"
	"time"

	"polycap/internal/app/model"
)

// Event describes one engine attempt.
type Event struct {
	Capability model.Capability `json:"capability"`
	EngineID   string           `json:"engine_id"`
	ChunkIndex int              `json:"chunk_index"`
	Latency    time.Duration    `json:"latency"`
	// Outcome is "success" or the failure kind.
	Outcome string    `json:"outcome"`
	At      time.Time `json:"at"`
}

// OutcomeSuccess is the Outcome value for successful attempts.
const OutcomeSuccess = "success"

// Sink consumes attempt events.
type Sink interface {
	Record(event Event)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) Record(Event) {}

// Emit delivers an event to the sink, swallowing sink panics so observability
// can never fail an attempt.
func Emit(sink Sink, event Event) {
	if sink == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	sink.Record(event)
}

const defaultRingSize = 256

// MemorySink keeps the most recent events in a ring, mainly for tests and the
// engines inspection endpoint.
type MemorySink struct {
	mu     sync.Mutex
	ring   []Event
	next   int
	filled bool
}

// NewMemorySink creates a sink retaining up to size events; size <= 0 uses the
// default capacity.
func NewMemorySink(size int) *MemorySink {
	if size <= 0 {
		size = defaultRingSize
	}
	return &MemorySink{ring: make([]Event, size)}
}

// Record stores the event, evicting the oldest once the ring is full.
func (s *MemorySink) Record(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ring[s.next] = event
	s.next++
	if s.next == len(s.ring) {
		s.next = 0
		s.filled = true
	}
}

// Events returns the retained events, oldest first.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.filled {
		out := make([]Event, s.next)
		copy(out, s.ring[:s.next])
		return out
	}
	out := make([]Event, 0, len(s.ring))
	out = append(out, s.ring[s.next:]...)
	out = append(out, s.ring[:s.next]...)
	return out
}

// MultiSink fans one event out to several sinks.
type MultiSink []Sink

func (m MultiSink) Record(event Event) {
	for _, s := range m {
		Emit(s, event)
	}
}
