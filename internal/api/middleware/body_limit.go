package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"polycap/internal/api/errors"
)

// MaxBodyBytes caps request bodies so a single upload cannot exhaust memory.
const MaxBodyBytes = 16 << 20 // 16MB

// BodyLimit rejects requests whose body exceeds maxBytes
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			apiErr := errors.NewPayloadTooLargeError(
				fmt.Sprintf("request body exceeds the %dMB limit", maxBytes>>20))
			apiErr.RequestID = RequestIDFrom(c)
			c.Header("Content-Type", "application/json")
			c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
			return
		}

		// Chunked requests carry no Content-Length, so cap the reader as well
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
