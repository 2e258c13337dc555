package observe

import (
	"testing"
	"time"

	"polycap/internal/app/model"
)

func event(engineID string, i int) Event {
	return Event{
		Capability: model.CapabilitySummarize,
		EngineID:   engineID,
		ChunkIndex: i,
		Latency:    10 * time.Millisecond,
		Outcome:    OutcomeSuccess,
		At:         time.Now(),
	}
}

func TestMemorySinkKeepsOrder(t *testing.T) {
	sink := NewMemorySink(8)
	for i := 0; i < 5; i++ {
		sink.Record(event("e", i))
	}

	events := sink.Events()
	if len(events) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(events))
	}
	for i, ev := range events {
		if ev.ChunkIndex != i {
			t.Errorf("Position %d holds chunk %d", i, ev.ChunkIndex)
		}
	}
}

func TestMemorySinkEvictsOldest(t *testing.T) {
	sink := NewMemorySink(4)
	for i := 0; i < 10; i++ {
		sink.Record(event("e", i))
	}

	events := sink.Events()
	if len(events) != 4 {
		t.Fatalf("Expected ring capped at 4 events, got %d", len(events))
	}
	want := []int{6, 7, 8, 9}
	for i, ev := range events {
		if ev.ChunkIndex != want[i] {
			t.Errorf("Position %d: expected chunk %d, got %d", i, want[i], ev.ChunkIndex)
		}
	}
}

type panickySink struct{}

func (panickySink) Record(Event) { panic("sink exploded") }

func TestEmitSwallowsSinkPanic(t *testing.T) {
	// Must not panic
	Emit(panickySink{}, event("e", 0))
	Emit(nil, event("e", 0))
}

func TestMultiSinkDeliversToAll(t *testing.T) {
	a := NewMemorySink(4)
	b := NewMemorySink(4)
	multi := MultiSink{a, panickySink{}, b}

	multi.Record(event("e", 1))

	if len(a.Events()) != 1 || len(b.Events()) != 1 {
		t.Error("Expected both memory sinks to receive the event despite the panicking one")
	}
}
