package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"polycap/internal/api/middleware"
	"polycap/internal/api/v1/services"
)

// EngineHandler handles engine registry and statistics endpoints
type EngineHandler struct {
	service services.EngineService
}

// NewEngineHandler creates a new engine handler
func NewEngineHandler(service services.EngineService) *EngineHandler {
	return &EngineHandler{
		service: service,
	}
}

// List handles GET /api/v1/engines
// Lists every registered engine with health stats
//
// @Summary List registered engines
// @Description Returns the registry snapshot: every engine with its capability, priority rank, timeout and recorded health
// @Tags engines
// @Accept json
// @Produce json
// @Success 200 {object} dto.EngineListResponse "Registered engines"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /engines [get]
func (h *EngineHandler) List(c *gin.Context) {
	response, err := h.service.ListEngines(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/engines/:id
// Retrieves one engine by ID
//
// @Summary Get engine by ID
// @Description Returns one registered engine with its recorded health
// @Tags engines
// @Accept json
// @Produce json
// @Param id path string true "Engine ID"
// @Success 200 {object} dto.EngineResponse "Engine details"
// @Failure 404 {object} errors.APIError "Engine not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /engines/{id} [get]
func (h *EngineHandler) Get(c *gin.Context) {
	response, err := h.service.GetEngine(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Languages handles GET /api/v1/languages
// Lists the language inventory per capability
//
// @Summary List supported languages per capability
// @Description Returns the declared language codes per capability; open_ended marks capabilities where at least one engine accepts any language
// @Tags engines
// @Accept json
// @Produce json
// @Success 200 {object} dto.LanguagesResponse "Language inventory"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /languages [get]
func (h *EngineHandler) Languages(c *gin.Context) {
	response, err := h.service.Languages(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Stats handles GET /api/v1/stats
// Returns request counters and aggregate engine health
//
// @Summary Get orchestrator statistics
// @Description Returns request outcome counters per capability plus aggregate engine health
// @Tags engines
// @Accept json
// @Produce json
// @Success 200 {object} dto.StatsResponse "Orchestrator statistics"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /stats [get]
func (h *EngineHandler) Stats(c *gin.Context) {
	response, err := h.service.Stats(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
