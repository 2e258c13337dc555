// Package attempt runs single engine invocations under their descriptor
// timeout. A slow engine is abandoned, never force-killed: the attempt
// resolves as a timeout and the invocation's late result is discarded.
package attempt

import (
	"context"
	"fmt"
	"time"

	"polycap/internal/app/engine"
	"polycap/internal/app/model"
	"polycap/internal/app/observe"
)

// DefaultGrace is how long past the descriptor timeout an attempt waits for
// an engine that is already wrapping up.
const DefaultGrace = 250 * time.Millisecond

// Executor runs engine attempts and emits one observability event per attempt.
type Executor struct {
	sink  observe.Sink
	grace time.Duration
}

// NewExecutor creates an executor; grace <= 0 falls back to DefaultGrace and a
// nil sink disables events.
func NewExecutor(sink observe.Sink, grace time.Duration) *Executor {
	if grace <= 0 {
		grace = DefaultGrace
	}
	if sink == nil {
		sink = observe.NopSink{}
	}
	return &Executor{sink: sink, grace: grace}
}

// Run executes exactly one attempt of the engine against the request. The
// outcome is never an error value: timeouts, panics and malformed payloads all
// come back as failure outcomes.
func (x *Executor) Run(ctx context.Context, e engine.Engine, request *model.CapabilityRequest, chunkIndex int) model.EngineOutcome {
	d := e.Descriptor()
	start := time.Now()

	attemptCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	// Buffered so an abandoned invocation can finish and be discarded
	ch := make(chan model.EngineOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- model.Failure(model.FailureInvalidOutput, fmt.Sprintf("engine panic: %v", r))
			}
		}()
		ch <- e.Invoke(attemptCtx, request)
	}()

	deadline := time.NewTimer(d.Timeout + x.grace)
	defer deadline.Stop()

	var outcome model.EngineOutcome
	select {
	case outcome = <-ch:
	case <-deadline.C:
		outcome = model.Failure(model.FailureTimeout,
			fmt.Sprintf("no result within %s", d.Timeout+x.grace))
	case <-ctx.Done():
		outcome = model.Failure(model.FailureTimeout, "attempt cancelled: "+ctx.Err().Error())
	}

	if outcome.OK() {
		outcome = validatePayload(request.Capability, outcome)
	}

	latency := time.Since(start)
	observe.Emit(x.sink, observe.Event{
		Capability: request.Capability,
		EngineID:   d.ID,
		ChunkIndex: chunkIndex,
		Latency:    latency,
		Outcome:    outcomeLabel(outcome),
		At:         start,
	})

	return outcome
}

// validatePayload coerces successes with the wrong payload shape into
// invalid-output failures.
func validatePayload(capability model.Capability, outcome model.EngineOutcome) model.EngineOutcome {
	switch capability {
	case model.CapabilityTextToSpeech:
		if len(outcome.Audio) == 0 {
			return model.Failure(model.FailureInvalidOutput, "engine returned no audio")
		}
	default:
		if outcome.Text == "" {
			return model.Failure(model.FailureInvalidOutput, "engine returned no text")
		}
	}
	return outcome
}

func outcomeLabel(outcome model.EngineOutcome) string {
	if outcome.OK() {
		return observe.OutcomeSuccess
	}
	return string(outcome.Kind)
}
