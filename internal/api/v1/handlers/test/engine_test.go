package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"polycap/internal/api/errors"
	"polycap/internal/api/v1/dto"
	"polycap/internal/api/v1/handlers"
	"polycap/internal/app/testutil"
)

func TestEngineHandler_List(t *testing.T) {
	router, mockServices := setupTestRouter(t)
	mockServices.EngineService.On("ListEngines", mock.Anything).
		Return(&dto.EngineListResponse{
			Engines: []dto.EngineResponse{
				{
					ID:            "openai-summarize",
					Name:          "OpenAI Summarizer",
					Capability:    "summarize",
					Priority:      10,
					TimeoutMs:     30000,
					Deterministic: false,
					Health: &dto.EngineHealthResponse{
						TotalAttempts: 12,
						SuccessRate:   0.75,
						IsHealthy:     true,
					},
				},
				{
					ID:            "local-extractive",
					Name:          "Extractive Summarizer",
					Capability:    "summarize",
					Priority:      90,
					TimeoutMs:     5000,
					Deterministic: true,
				},
			},
			Total: 2,
		}, nil)

	handler := handlers.NewEngineHandler(mockServices.EngineService)
	router.GET("/api/v1/engines", handler.List)

	req := httptest.NewRequest("GET", "/api/v1/engines", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	engines := body["engines"].([]interface{})
	assert.Len(t, engines, 2)
	assert.Equal(t, float64(2), body["total"])

	first := engines[0].(map[string]interface{})
	assert.Equal(t, "openai-summarize", first["id"])
	health := first["health"].(map[string]interface{})
	assert.Equal(t, 0.75, health["success_rate"])

	second := engines[1].(map[string]interface{})
	assert.Equal(t, true, second["deterministic"])
	assert.Nil(t, second["health"])
}

func TestEngineHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		engineID       string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:     "successful get",
			engineID: "local-dictionary",
			setupMocks: func(ms *testutil.MockServices) {
				ms.EngineService.On("GetEngine", mock.Anything, "local-dictionary").
					Return(&dto.EngineResponse{
						ID:            "local-dictionary",
						Name:          "Dictionary Translator",
						Capability:    "translate",
						Priority:      90,
						Deterministic: true,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "local-dictionary", body["id"])
				assert.Equal(t, "translate", body["capability"])
			},
		},
		{
			name:     "not found",
			engineID: "quantum-oracle",
			setupMocks: func(ms *testutil.MockServices) {
				ms.EngineService.On("GetEngine", mock.Anything, "quantum-oracle").
					Return(nil, errors.NewNotFoundError("engine"))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "not_found", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewEngineHandler(mockServices.EngineService)
			router.GET("/api/v1/engines/:id", handler.Get)

			req := httptest.NewRequest("GET", "/api/v1/engines/"+tt.engineID, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			tt.validateBody(t, body)
		})
	}
}

func TestEngineHandler_Languages(t *testing.T) {
	router, mockServices := setupTestRouter(t)
	mockServices.EngineService.On("Languages", mock.Anything).
		Return(&dto.LanguagesResponse{
			Capabilities: []dto.CapabilityLanguagesResponse{
				{Capability: "summarize", Languages: []string{}, OpenEnded: true, Engines: 1},
				{Capability: "translate", Languages: []string{"de", "es", "fr"}, OpenEnded: true, Engines: 2},
			},
		}, nil)

	handler := handlers.NewEngineHandler(mockServices.EngineService)
	router.GET("/api/v1/languages", handler.Languages)

	req := httptest.NewRequest("GET", "/api/v1/languages", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	capabilities := body["capabilities"].([]interface{})
	require.Len(t, capabilities, 2)

	translate := capabilities[1].(map[string]interface{})
	assert.Equal(t, "translate", translate["capability"])
	assert.Len(t, translate["languages"].([]interface{}), 3)
	assert.Equal(t, true, translate["open_ended"])
}

func TestEngineHandler_Stats(t *testing.T) {
	router, mockServices := setupTestRouter(t)
	mockServices.EngineService.On("Stats", mock.Anything).
		Return(&dto.StatsResponse{
			TotalRequests:     42,
			FullSuccesses:     30,
			DegradedSuccesses: 10,
			Failures:          2,
			CapabilityUsage:   map[string]int64{"summarize": 25, "translate": 17},
			Engines: dto.EngineOverallResponse{
				TotalEngines:       4,
				TotalAttempts:      60,
				OverallSuccessRate: 0.9,
				FastestEngine:      "local-extractive",
			},
		}, nil)

	handler := handlers.NewEngineHandler(mockServices.EngineService)
	router.GET("/api/v1/stats", handler.Stats)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, float64(42), body["total_requests"])
	assert.Equal(t, float64(10), body["degraded_successes"])

	engines := body["engines"].(map[string]interface{})
	assert.Equal(t, "local-extractive", engines["fastest_engine"])

	usage := body["capability_usage"].(map[string]interface{})
	assert.Equal(t, float64(25), usage["summarize"])
}
