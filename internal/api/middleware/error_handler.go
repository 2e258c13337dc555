package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"polycap/internal/api/errors"
)

// ErrorHandler recovers panics into APIError responses. A recovered *APIError
// keeps its kind and details; anything else is logged with the request ID and
// answered as a generic internal error.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := RequestIDFrom(c)

		apiErr, ok := recovered.(*errors.APIError)
		if !ok {
			logger.Error("Recovered panic in handler",
				"recovered", recovered,
				"request_id", requestID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			apiErr = errors.NewInternalError("Internal server error")
		}
		apiErr.RequestID = requestID

		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes an APIError response. Non-API errors escape as panics so
// the recovery middleware logs them and hides the cause from the client.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr, ok := err.(*errors.APIError)
	if !ok {
		panic(err)
	}

	apiErr.RequestID = RequestIDFrom(c)
	c.Header("Content-Type", "application/json")
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
