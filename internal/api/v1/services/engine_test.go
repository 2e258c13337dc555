package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "polycap/internal/api/errors"
	"polycap/internal/app/attempt"
	"polycap/internal/app/engine"
	"polycap/internal/app/model"
	"polycap/internal/app/observe"
	"polycap/internal/app/orchestrator"
)

type stubEngine struct {
	descriptor model.EngineDescriptor
}

func (s *stubEngine) Descriptor() model.EngineDescriptor {
	return s.descriptor
}

func (s *stubEngine) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	return model.SuccessText("stub result")
}

func stub(id string, capability model.Capability, priority int, languages ...string) *stubEngine {
	return &stubEngine{
		descriptor: model.EngineDescriptor{
			ID:         id,
			Name:       "Stub " + id,
			Capability: capability,
			Priority:   priority,
			Timeout:    5 * time.Second,
			Languages:  languages,
		},
	}
}

func newEngineService(t *testing.T, engines ...engine.Engine) (*DefaultEngineService, engine.Metrics) {
	t.Helper()

	registry := engine.NewEngineRegistry()
	for _, e := range engines {
		require.NoError(t, registry.Register(e))
	}
	metrics := engine.NewEngineMetrics()
	executor := attempt.NewExecutor(observe.NewMemorySink(16), 40*time.Millisecond)
	chain := orchestrator.NewFallbackChain(registry, executor, metrics, nil)
	orc := orchestrator.NewCapabilityOrchestrator(registry, chain, nil, orchestrator.DefaultConfig(), nil)
	return NewEngineService(registry, metrics, orc), metrics
}

func TestEngineServiceListEngines(t *testing.T) {
	service, metrics := newEngineService(t,
		stub("cloud-summarize", model.CapabilitySummarize, 10),
		stub("local-extractive", model.CapabilitySummarize, 90),
	)
	metrics.RecordSuccess("cloud-summarize", 120)

	response, err := service.ListEngines(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, response.Total)
	require.Len(t, response.Engines, 2)

	// Snapshot sorts by capability, then priority rank
	assert.Equal(t, "cloud-summarize", response.Engines[0].ID)
	require.NotNil(t, response.Engines[0].Health)
	assert.Equal(t, int64(1), response.Engines[0].Health.TotalAttempts)

	assert.Equal(t, "local-extractive", response.Engines[1].ID)
	assert.Nil(t, response.Engines[1].Health, "engines without attempts should omit health")
}

func TestEngineServiceGetEngine(t *testing.T) {
	service, _ := newEngineService(t, stub("local-dictionary", model.CapabilityTranslate, 90))

	response, err := service.GetEngine(context.Background(), "local-dictionary")
	require.NoError(t, err)
	assert.Equal(t, "translate", response.Capability)

	_, err = service.GetEngine(context.Background(), "missing")
	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, apierrors.KindNotFound, apiErr.Kind)
}

func TestEngineServiceLanguages(t *testing.T) {
	service, _ := newEngineService(t,
		stub("cloud-translate", model.CapabilityTranslate, 10, "es", "fr", "de"),
		stub("gemini-translate", model.CapabilityTranslate, 20, "es", "ja"),
		stub("local-dictionary", model.CapabilityTranslate, 90),
		stub("local-extractive", model.CapabilitySummarize, 90),
	)

	response, err := service.Languages(context.Background())
	require.NoError(t, err)
	require.Len(t, response.Capabilities, 2)

	summarize := response.Capabilities[0]
	assert.Equal(t, "summarize", summarize.Capability)
	assert.Empty(t, summarize.Languages)
	assert.True(t, summarize.OpenEnded)

	translate := response.Capabilities[1]
	assert.Equal(t, "translate", translate.Capability)
	assert.Equal(t, []string{"de", "es", "fr", "ja"}, translate.Languages)
	assert.True(t, translate.OpenEnded, "the terminal translator accepts any language")
	assert.Equal(t, 3, translate.Engines)
}

func TestEngineServiceStats(t *testing.T) {
	service, metrics := newEngineService(t,
		stub("local-extractive", model.CapabilitySummarize, 90),
	)
	metrics.RecordSuccess("local-extractive", 8)
	metrics.RecordFailure("local-extractive", model.FailureTimeout)

	response, err := service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), response.TotalRequests, "no orchestrator requests ran yet")
	assert.Equal(t, 1, response.Engines.TotalEngines)
	assert.Equal(t, int64(2), response.Engines.TotalAttempts)
	assert.InDelta(t, 0.5, response.Engines.OverallSuccessRate, 0.001)
}
