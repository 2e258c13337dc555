package observe

import "github.com/prometheus/client_golang/prometheus"

// EngineBuckets covers engine attempt latencies from fast local fallbacks to
// slow cloud calls.
var EngineBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60}

var (
	// AttemptsTotal counts engine attempts by capability, engine and outcome.
	AttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polycap_engine_attempts_total",
			Help: "Engine attempts",
		},
		[]string{"capability", "engine", "outcome"},
	)

	// AttemptLatency records attempt latency in seconds.
	AttemptLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "polycap_engine_attempt_latency_seconds",
			Help:    "Engine attempt latency",
			Buckets: EngineBuckets,
		},
		[]string{"capability", "engine"},
	)
)

func init() {
	prometheus.MustRegister(
		AttemptsTotal,
		AttemptLatency,
	)
}

// PromSink exports attempt events as Prometheus metrics.
type PromSink struct{}

// NewPromSink creates a sink writing to the package collectors.
func NewPromSink() *PromSink {
	return &PromSink{}
}

// Record implements Sink.
func (s *PromSink) Record(event Event) {
	capability := string(event.Capability)
	AttemptsTotal.WithLabelValues(capability, event.EngineID, event.Outcome).Inc()
	AttemptLatency.WithLabelValues(capability, event.EngineID).Observe(event.Latency.Seconds())
}
