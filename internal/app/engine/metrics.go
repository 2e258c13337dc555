package engine

import (
	"sync"
	"time"

	"polycap/internal/app/model"
)

// Stats holds the health view of one engine.
type Stats struct {
	EngineID           string           `json:"engine_id"`
	TotalAttempts      int64            `json:"total_attempts"`
	SuccessfulAttempts int64            `json:"successful_attempts"`
	FailedAttempts     int64            `json:"failed_attempts"`
	SuccessRate        float64          `json:"success_rate"`
	AverageLatencyMs   float64          `json:"average_latency_ms"`
	LastUsed           int64            `json:"last_used"`
	IsHealthy          bool             `json:"is_healthy"`
	FailureBreakdown   map[string]int64 `json:"failure_breakdown,omitempty"`
}

// Overall aggregates health across engines.
type Overall struct {
	TotalEngines       int              `json:"total_engines"`
	TotalAttempts      int64            `json:"total_attempts"`
	SuccessfulAttempts int64            `json:"successful_attempts"`
	OverallSuccessRate float64          `json:"overall_success_rate"`
	FastestEngine      string           `json:"fastest_engine,omitempty"`
	MostReliableEngine string           `json:"most_reliable_engine,omitempty"`
	EngineStats        map[string]Stats `json:"engine_stats"`
}

// DefaultEngineMetrics implements Metrics
type DefaultEngineMetrics struct {
	mu    sync.RWMutex
	stats map[string]*Stats
}

// NewEngineMetrics creates a new engine metrics instance
func NewEngineMetrics() *DefaultEngineMetrics {
	return &DefaultEngineMetrics{
		stats: make(map[string]*Stats),
	}
}

// RecordSuccess records a successful attempt
func (m *DefaultEngineMetrics) RecordSuccess(engineID string, latencyMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.getOrCreate(engineID)
	s.TotalAttempts++
	s.SuccessfulAttempts++
	s.LastUsed = time.Now().Unix()
	s.IsHealthy = true

	// Weighted average favoring recent results
	if s.AverageLatencyMs == 0 {
		s.AverageLatencyMs = float64(latencyMs)
	} else {
		s.AverageLatencyMs = (s.AverageLatencyMs * 0.8) + (float64(latencyMs) * 0.2)
	}

	s.SuccessRate = float64(s.SuccessfulAttempts) / float64(s.TotalAttempts)
}

// RecordFailure records a failed attempt
func (m *DefaultEngineMetrics) RecordFailure(engineID string, kind model.FailureKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.getOrCreate(engineID)
	s.TotalAttempts++
	s.FailedAttempts++
	s.LastUsed = time.Now().Unix()

	if s.FailureBreakdown == nil {
		s.FailureBreakdown = make(map[string]int64)
	}
	s.FailureBreakdown[string(kind)]++

	s.SuccessRate = float64(s.SuccessfulAttempts) / float64(s.TotalAttempts)

	// Mark as unhealthy once failures dominate a meaningful sample
	if s.TotalAttempts >= 10 && s.SuccessRate < 0.5 {
		s.IsHealthy = false
	}
}

// EngineStats returns a copy of one engine's stats
func (m *DefaultEngineMetrics) EngineStats(engineID string) Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.stats[engineID]
	if !exists {
		return Stats{EngineID: engineID}
	}
	return copyStats(s)
}

// OverallStats aggregates across all engines
func (m *DefaultEngineMetrics) OverallStats() Overall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var totalAttempts, successfulAttempts int64
	var fastestEngine, mostReliableEngine string
	var fastestLatency, highestReliability float64

	engineStats := make(map[string]Stats)
	for id, s := range m.stats {
		totalAttempts += s.TotalAttempts
		successfulAttempts += s.SuccessfulAttempts
		engineStats[id] = copyStats(s)

		if s.AverageLatencyMs > 0 && (fastestLatency == 0 || s.AverageLatencyMs < fastestLatency) {
			fastestLatency = s.AverageLatencyMs
			fastestEngine = id
		}
		if s.TotalAttempts >= 5 && s.SuccessRate > highestReliability {
			highestReliability = s.SuccessRate
			mostReliableEngine = id
		}
	}

	var overallRate float64
	if totalAttempts > 0 {
		overallRate = float64(successfulAttempts) / float64(totalAttempts)
	}

	return Overall{
		TotalEngines:       len(m.stats),
		TotalAttempts:      totalAttempts,
		SuccessfulAttempts: successfulAttempts,
		OverallSuccessRate: overallRate,
		FastestEngine:      fastestEngine,
		MostReliableEngine: mostReliableEngine,
		EngineStats:        engineStats,
	}
}

// getOrCreate must be called with the lock held
func (m *DefaultEngineMetrics) getOrCreate(engineID string) *Stats {
	s, exists := m.stats[engineID]
	if !exists {
		s = &Stats{
			EngineID:         engineID,
			FailureBreakdown: make(map[string]int64),
		}
		m.stats[engineID] = s
	}
	return s
}

func copyStats(s *Stats) Stats {
	out := *s
	if s.FailureBreakdown != nil {
		out.FailureBreakdown = make(map[string]int64, len(s.FailureBreakdown))
		for k, v := range s.FailureBreakdown {
			out.FailureBreakdown[k] = v
		}
	}
	return out
}
