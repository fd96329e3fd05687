package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/pantry-chef/backend/internal/logging"
)

// RequestIDHeader carries the request ID in and out
const RequestIDHeader = "X-Request-ID"

// RequestLogger assigns every request an ID, stores it on the request context
// and writes one access log line when the handler returns
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	logger = logger.With().Str(logging.FieldComponent, "http").Logger()

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}

		event.
			Str(logging.FieldRequestID, requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int(logging.FieldStatus, status).
			Int64(logging.FieldDuration, time.Since(start).Milliseconds()).
			Msg("Request handled")
	}
}
