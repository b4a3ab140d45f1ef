package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"transcribe-translate/internal/errors"
)

// errorResponse is the JSON body returned to clients on failure
type errorResponse struct {
	*errors.PipelineError
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler middleware handles errors consistently across the API
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString("request_id")

		var perr *errors.PipelineError

		switch err := recovered.(type) {
		case *errors.PipelineError:
			perr = err
		case error:
			logger.Error("internal server error",
				zap.String("error", err.Error()),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			perr = errors.NewInternalError("internal server error")
		default:
			logger.Error("unknown panic occurred",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)
			perr = errors.NewInternalError("internal server error")
		}

		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(perr.HTTPStatus(), errorResponse{PipelineError: perr, RequestID: requestID})
	})
}

// HandleError is a helper function for handlers to return errors
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if perr, ok := err.(*errors.PipelineError); ok {
		requestID := c.GetString("request_id")
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(perr.HTTPStatus(), errorResponse{PipelineError: perr, RequestID: requestID})
		return
	}

	// Not a pipeline error: panic so the recovery middleware reports it
	panic(err)
}
