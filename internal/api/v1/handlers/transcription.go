package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transcribe-translate/internal/api/middleware"
	"transcribe-translate/internal/api/v1/dto"
	"transcribe-translate/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Create handles POST /api/v1/transcriptions.
// Runs one pipeline invocation to completion and returns the transcript
// result; the request blocks for the duration of the remote job.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateTranscriptionRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Run(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Countries handles GET /api/v1/countries
func (h *TranscriptionHandler) Countries(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Countries())
}
