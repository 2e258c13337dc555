package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// StructuredLogging provides structured logging middleware
func StructuredLogging(logger *slog.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID := ""
		if param.Keys != nil {
			if id, exists := param.Keys[ContextRequestID]; exists {
				requestID = id.(string)
			}
		}

		// Health checks and prometheus scrapes would drown out real traffic
		if param.Path == "/health" || param.Path == "/metrics" {
			return ""
		}

		// A 5xx means every engine in some chunk's chain failed.
		level := slog.LevelInfo
		switch {
		case param.StatusCode >= 500:
			level = slog.LevelError
		case param.StatusCode >= 400:
			level = slog.LevelWarn
		}

		logger.Log(param.Request.Context(), level, "HTTP Request",
			"request_id", requestID,
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency_ms", param.Latency.Milliseconds(),
			"client_ip", param.ClientIP,
			"user_agent", param.Request.UserAgent(),
			"error", param.ErrorMessage,
		)

		return ""
	})
}
