package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"polycap/internal/api/middleware"
	"polycap/internal/app/attempt"
	"polycap/internal/app/detect"
	"polycap/internal/app/engine"
	"polycap/internal/app/engines/local"
	"polycap/internal/app/observe"
	"polycap/internal/app/orchestrator"
)

// newTestServer wires a full server around the local engines so requests run
// the real middleware chain, orchestrator and fallback logic.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	registry := engine.NewEngineRegistry()
	for _, e := range []engine.Engine{
		local.NewExtractiveSummarizer(90),
		local.NewDictionaryTranslator(90),
		local.NewPatternTranscriber(90),
		local.NewWaveformSynthesizer(90),
	} {
		require.NoError(t, registry.Register(e))
	}

	metrics := engine.NewEngineMetrics()
	executor := attempt.NewExecutor(observe.NewPromSink(), 40*time.Millisecond)
	chain := orchestrator.NewFallbackChain(registry, executor, metrics, nil)
	orc := orchestrator.NewCapabilityOrchestrator(
		registry, chain, detect.NewWhatlangDetector(0), orchestrator.DefaultConfig(), nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(Config{Environment: "production"}, orc, registry, metrics, nil, logger)
}

func TestServerHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestServerRootListsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Polycap Capability API")
	assert.Contains(t, w.Body.String(), "/api/v1/summarize")
}

func TestServerSummarizeEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(map[string]interface{}{
		"text":         strings.Repeat("The migration plan covers the database, the cache and the message broker. ", 3),
		"length_class": "short",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, "/api/v1/summarize", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "full_success", response["status"])
	assert.NotEmpty(t, response["payload"])

	provenance, ok := response["engineProvenance"].([]interface{})
	require.True(t, ok)
	require.Len(t, provenance, 1)
}

func TestServerEnginesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/api/v1/engines", nil)
	require.NoError(t, err)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.EqualValues(t, 4, response["total"])
}

func TestServerObservabilityEndpoints(t *testing.T) {
	srv := newTestServer(t)

	// Drive one request through the chain so the counters have samples.
	body, err := json.Marshal(map[string]interface{}{
		"text": strings.Repeat("The migration plan covers the database, the cache and the message broker. ", 3),
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, "/api/v1/summarize", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, err = http.NewRequest(http.MethodGet, "/metrics", nil)
	require.NoError(t, err)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "polycap_engine_attempts_total")

	w = httptest.NewRecorder()
	req, err = http.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	require.NoError(t, err)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats["total_requests"])
	assert.EqualValues(t, 1, stats["full_successes"])
}

func TestServerRejectsOversizedBody(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader("{}"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = middleware.MaxBodyBytes + 1
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "payload_too_large")
}
