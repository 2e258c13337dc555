package routes

import (
	"github.com/gin-gonic/gin"
	"polycap/internal/api/v1/handlers"
	"polycap/internal/api/v1/services"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	capabilityHandler := handlers.NewCapabilityHandler(container.CapabilityService)

	// Capability routes
	router.POST("/summarize", capabilityHandler.Summarize)
	router.POST("/translate", capabilityHandler.Translate)
	router.POST("/speech", capabilityHandler.Synthesize)

	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", capabilityHandler.Transcribe)
		transcriptions.POST("/upload", capabilityHandler.TranscribeUpload)
	}

	// Engine registry routes
	if container.EngineService != nil {
		engineHandler := handlers.NewEngineHandler(container.EngineService)
		engines := router.Group("/engines")
		{
			engines.GET("", engineHandler.List)
			engines.GET("/:id", engineHandler.Get)
		}
		router.GET("/languages", engineHandler.Languages)
		router.GET("/stats", engineHandler.Stats)
	}
}

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	CapabilityService services.CapabilityService
	EngineService     services.EngineService
	ArtifactStore     services.ArtifactStore
}
