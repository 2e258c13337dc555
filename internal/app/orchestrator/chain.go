package orchestrator

import (
	"context"
	"fmt"
	"time"

	"polycap/internal/app/attempt"
	"polycap/internal/app/engine"
	"polycap/internal/app/model"
)

// FallbackChain resolves a single chunk by walking the priority-ordered
// engines of a capability, attempting each at most once
type FallbackChain struct {
	registry engine.Registry
	executor *attempt.Executor
	metrics  engine.Metrics
	logger   Logger
}

// NewFallbackChain creates a fallback chain over the given registry
func NewFallbackChain(registry engine.Registry, executor *attempt.Executor, metrics engine.Metrics, logger Logger) *FallbackChain {
	if logger == nil {
		logger = &NopLogger{}
	}
	return &FallbackChain{
		registry: registry,
		executor: executor,
		metrics:  metrics,
		logger:   logger,
	}
}

// chainResult carries the outcome of one chunk together with its provenance
type chainResult struct {
	outcome    model.EngineOutcome
	provenance model.ChunkProvenance
	warnings   []string
}

// Resolve attempts engines in priority order until one succeeds or the
// chain is exhausted. Engines that do not cover the request language are
// skipped and recorded without being invoked.
func (c *FallbackChain) Resolve(ctx context.Context, request *model.CapabilityRequest, chunkIndex int, language string) chainResult {
	result := chainResult{
		provenance: model.ChunkProvenance{ChunkIndex: chunkIndex},
	}

	engines := c.registry.EnginesFor(request.Capability)
	if len(engines) == 0 {
		msg := fmt.Sprintf("no engines registered for capability %s", request.Capability)
		result.outcome = model.Failure(model.FailureUnavailable, msg)
		result.warnings = append(result.warnings, msg)
		return result
	}

	var lastFailure model.EngineOutcome
	invoked := false
	consumed := 0

	for _, eng := range engines {
		descriptor := eng.Descriptor()
		if !descriptor.SupportsLanguage(language) {
			result.provenance.AttemptedEngines = append(result.provenance.AttemptedEngines, descriptor.ID)
			consumed++
			if c.metrics != nil {
				c.metrics.RecordFailure(descriptor.ID, model.FailureUnsupportedLanguage)
			}
			result.warnings = append(result.warnings,
				fmt.Sprintf("engine %s skipped for chunk %d: language %s not supported", descriptor.ID, chunkIndex, language))
			continue
		}

		start := time.Now()
		outcome := c.executor.Run(ctx, eng, request, chunkIndex)
		latency := time.Since(start)

		result.provenance.AttemptedEngines = append(result.provenance.AttemptedEngines, descriptor.ID)
		result.provenance.Attempts++
		invoked = true

		if outcome.OK() {
			if c.metrics != nil {
				c.metrics.RecordSuccess(descriptor.ID, latency.Milliseconds())
			}
			result.outcome = outcome
			result.provenance.SuccessfulEngine = descriptor.ID
			result.provenance.Degraded = consumed > 0
			return result
		}

		if c.metrics != nil {
			c.metrics.RecordFailure(descriptor.ID, outcome.Kind)
		}
		lastFailure = outcome
		consumed++

		c.logger.Info("engine attempt failed, falling back",
			"engine", descriptor.ID,
			"chunk", chunkIndex,
			"kind", string(outcome.Kind),
			"message", outcome.Message)

		if descriptor.Deterministic {
			result.warnings = append(result.warnings,
				fmt.Sprintf("deterministic engine %s failed on chunk %d: %s", descriptor.ID, chunkIndex, outcome.Message))
			c.logger.Error("deterministic engine failed",
				"engine", descriptor.ID,
				"chunk", chunkIndex,
				"message", outcome.Message)
		}
	}

	if invoked {
		result.outcome = lastFailure
	} else {
		result.outcome = model.Failure(model.FailureUnsupportedLanguage,
			fmt.Sprintf("no engine for capability %s covers language %s", request.Capability, language))
	}
	return result
}
