package dto

import (
	"polycap/internal/app/engine"
	"polycap/internal/app/model"
)

// EngineHealthResponse summarizes one engine's recorded health
type EngineHealthResponse struct {
	TotalAttempts    int64            `json:"total_attempts"`
	SuccessRate      float64          `json:"success_rate"`
	AverageLatencyMs float64          `json:"average_latency_ms"`
	IsHealthy        bool             `json:"is_healthy"`
	LastUsed         int64            `json:"last_used,omitempty"`
	FailureBreakdown map[string]int64 `json:"failure_breakdown,omitempty"`
}

// EngineResponse represents a registered engine in API responses
type EngineResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Capability    string                `json:"capability"`
	Priority      int                   `json:"priority"`
	TimeoutMs     int64                 `json:"timeout_ms"`
	Deterministic bool                  `json:"deterministic"`
	Languages     []string              `json:"languages,omitempty"`
	Health        *EngineHealthResponse `json:"health,omitempty"`
}

// EngineListResponse represents the registry snapshot
type EngineListResponse struct {
	Engines []EngineResponse `json:"engines"`
	Total   int              `json:"total"`
}

// CapabilityLanguagesResponse lists the declared languages of one capability.
// OpenEnded means at least one registered engine accepts every language, so
// the list is a floor rather than a fence.
type CapabilityLanguagesResponse struct {
	Capability string   `json:"capability"`
	Languages  []string `json:"languages"`
	OpenEnded  bool     `json:"open_ended"`
	Engines    int      `json:"engines"`
}

// LanguagesResponse represents the language inventory per capability
type LanguagesResponse struct {
	Capabilities []CapabilityLanguagesResponse `json:"capabilities"`
}

// EngineOverallResponse aggregates health across all engines
type EngineOverallResponse struct {
	TotalEngines       int     `json:"total_engines"`
	TotalAttempts      int64   `json:"total_attempts"`
	OverallSuccessRate float64 `json:"overall_success_rate"`
	FastestEngine      string  `json:"fastest_engine,omitempty"`
	MostReliableEngine string  `json:"most_reliable_engine,omitempty"`
}

// StatsResponse represents orchestrator-wide request and engine statistics
type StatsResponse struct {
	TotalRequests     int64                 `json:"total_requests"`
	FullSuccesses     int64                 `json:"full_successes"`
	DegradedSuccesses int64                 `json:"degraded_successes"`
	Failures          int64                 `json:"failures"`
	CapabilityUsage   map[string]int64      `json:"capability_usage"`
	Engines           EngineOverallResponse `json:"engines"`
}

// ToEngineResponse converts a descriptor and its stats to the response DTO.
// Stats with no recorded attempts are omitted rather than reported as zeros.
func ToEngineResponse(d model.EngineDescriptor, stats engine.Stats) EngineResponse {
	resp := EngineResponse{
		ID:            d.ID,
		Name:          d.Name,
		Capability:    string(d.Capability),
		Priority:      d.Priority,
		TimeoutMs:     d.Timeout.Milliseconds(),
		Deterministic: d.Deterministic,
		Languages:     d.Languages,
	}

	if stats.TotalAttempts > 0 {
		resp.Health = &EngineHealthResponse{
			TotalAttempts:    stats.TotalAttempts,
			SuccessRate:      stats.SuccessRate,
			AverageLatencyMs: stats.AverageLatencyMs,
			IsHealthy:        stats.IsHealthy,
			LastUsed:         stats.LastUsed,
			FailureBreakdown: stats.FailureBreakdown,
		}
	}

	return resp
}

// ToEngineOverallResponse converts aggregate metrics to the response DTO
func ToEngineOverallResponse(overall engine.Overall) EngineOverallResponse {
	return EngineOverallResponse{
		TotalEngines:       overall.TotalEngines,
		TotalAttempts:      overall.TotalAttempts,
		OverallSuccessRate: overall.OverallSuccessRate,
		FastestEngine:      overall.FastestEngine,
		MostReliableEngine: overall.MostReliableEngine,
	}
}
