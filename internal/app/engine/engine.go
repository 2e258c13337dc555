// Package engine defines the contract every capability engine satisfies and
// the registry the orchestrator selects engines from. Engines are injected
// handles: the registry never constructs or configures them.
package engine

import (
	"context"

	"polycap/internal/app/model"
)

// Engine executes a single capability attempt. Invoke must honor ctx
// cancellation and report failures through the outcome, never by panicking.
type Engine interface {
	// Descriptor returns the registry-facing identity of the engine.
	Descriptor() model.EngineDescriptor

	// Invoke runs one attempt against the request's payload. For chunked
	// requests the orchestrator passes a request scoped to one chunk.
	Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome
}

// Registry manages engine registration and priority-ordered lookup.
type Registry interface {
	// Register adds an engine. The first engine registered for a capability
	// becomes that capability's default.
	Register(e Engine) error

	// Get retrieves an engine by descriptor ID.
	Get(id string) (Engine, error)

	// EnginesFor returns the capability's engines sorted by priority rank,
	// registration order breaking ties.
	EnginesFor(capability model.Capability) []Engine

	// Default returns the capability's default engine.
	Default(capability model.Capability) (Engine, error)

	// SetDefault overrides the capability's default engine.
	SetDefault(capability model.Capability, id string) error

	// Snapshot returns a copy of every registered descriptor.
	Snapshot() []model.EngineDescriptor
}

// Metrics records per-engine health observations.
type Metrics interface {
	RecordSuccess(engineID string, latencyMs int64)
	RecordFailure(engineID string, kind model.FailureKind)
	EngineStats(engineID string) Stats
	OverallStats() Overall
}
