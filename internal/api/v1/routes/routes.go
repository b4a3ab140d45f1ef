package routes

import (
	"github.com/gin-gonic/gin"

	"transcribe-translate/internal/api/v1/handlers"
	"transcribe-translate/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)

	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", transcriptionHandler.Create)
	}

	router.GET("/countries", transcriptionHandler.Countries)
}
