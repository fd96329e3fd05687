// Package logging configures zerolog for the service and carries
// request-scoped fields through context.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Standard field keys for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
)

// Config contains logging configuration.
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// New creates a zerolog logger for the named service.
func New(cfg Config, service string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.ToLower(cfg.Format) != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// Nop returns a logger that discards everything; handy in tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

type requestIDKey struct{}

// WithRequestID stores the request ID on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request ID stored on the context, if any.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// FromContext enriches base with the request ID carried by ctx.
func FromContext(ctx context.Context, base zerolog.Logger) zerolog.Logger {
	if id := RequestID(ctx); id != "" {
		return base.With().Str(FieldRequestID, id).Logger()
	}
	return base
}
