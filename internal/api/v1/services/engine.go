package services

import (
	"context"
	"sort"

	"github.com/samber/lo"
	apierrors "polycap/internal/api/errors"
	"polycap/internal/api/v1/dto"
	"polycap/internal/app/engine"
	"polycap/internal/app/model"
	"polycap/internal/app/orchestrator"
)

// EngineService exposes the engine registry and health metrics to the API
type EngineService interface {
	ListEngines(ctx context.Context) (*dto.EngineListResponse, error)
	GetEngine(ctx context.Context, id string) (*dto.EngineResponse, error)
	Languages(ctx context.Context) (*dto.LanguagesResponse, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

// DefaultEngineService implements EngineService
type DefaultEngineService struct {
	registry     engine.Registry
	metrics      engine.Metrics
	orchestrator *orchestrator.CapabilityOrchestrator
}

// NewEngineService creates a new engine service
func NewEngineService(registry engine.Registry, metrics engine.Metrics, orc *orchestrator.CapabilityOrchestrator) *DefaultEngineService {
	return &DefaultEngineService{
		registry:     registry,
		metrics:      metrics,
		orchestrator: orc,
	}
}

// ListEngines returns every registered engine with its recorded health
func (s *DefaultEngineService) ListEngines(ctx context.Context) (*dto.EngineListResponse, error) {
	descriptors := s.registry.Snapshot()

	engines := lo.Map(descriptors, func(d model.EngineDescriptor, _ int) dto.EngineResponse {
		return dto.ToEngineResponse(d, s.metrics.EngineStats(d.ID))
	})

	return &dto.EngineListResponse{
		Engines: engines,
		Total:   len(engines),
	}, nil
}

// GetEngine returns one engine by ID
func (s *DefaultEngineService) GetEngine(ctx context.Context, id string) (*dto.EngineResponse, error) {
	e, err := s.registry.Get(id)
	if err != nil {
		return nil, apierrors.NewNotFoundError("engine")
	}

	response := dto.ToEngineResponse(e.Descriptor(), s.metrics.EngineStats(id))
	return &response, nil
}

// Languages aggregates the declared language inventory per capability
func (s *DefaultEngineService) Languages(ctx context.Context) (*dto.LanguagesResponse, error) {
	byCapability := lo.GroupBy(s.registry.Snapshot(), func(d model.EngineDescriptor) model.Capability {
		return d.Capability
	})

	capabilities := make([]dto.CapabilityLanguagesResponse, 0, len(byCapability))
	for capability, descriptors := range byCapability {
		languages := lo.Uniq(lo.FlatMap(descriptors, func(d model.EngineDescriptor, _ int) []string {
			return d.Languages
		}))
		sort.Strings(languages)

		capabilities = append(capabilities, dto.CapabilityLanguagesResponse{
			Capability: string(capability),
			Languages:  languages,
			OpenEnded: lo.SomeBy(descriptors, func(d model.EngineDescriptor) bool {
				return len(d.Languages) == 0
			}),
			Engines: len(descriptors),
		})
	}
	sort.Slice(capabilities, func(i, j int) bool {
		return capabilities[i].Capability < capabilities[j].Capability
	})

	return &dto.LanguagesResponse{Capabilities: capabilities}, nil
}

// Stats returns request counters and aggregate engine health
func (s *DefaultEngineService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats := s.orchestrator.GetStats()

	usage := make(map[string]int64, len(stats.CapabilityUsage))
	for capability, count := range stats.CapabilityUsage {
		usage[string(capability)] = count
	}

	return &dto.StatsResponse{
		TotalRequests:     stats.TotalRequests,
		FullSuccesses:     stats.FullSuccesses,
		DegradedSuccesses: stats.DegradedSuccesses,
		Failures:          stats.Failures,
		CapabilityUsage:   usage,
		Engines:           dto.ToEngineOverallResponse(s.metrics.OverallStats()),
	}, nil
}
