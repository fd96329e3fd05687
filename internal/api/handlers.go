package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *redis.Client
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Dependencies are the collaborators the HTTP routes need. Limiter and Redis
// are nil when rate limiting is disabled.
type Dependencies struct {
	Suggester service.RecipeSuggester
	Limiter   *middleware.RateLimiter
	Redis     Pinger
	Logger    zerolog.Logger
}

// HealthHandler reports liveness and, when configured, Redis reachability
type HealthHandler struct {
	redis Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{redis: pinger}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"message": "Pantry Chef API is running",
		"version": "v1.0.0",
	}

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// the limiter fails open, so the API is still usable
			body["status"] = "degraded"
			body["redis"] = "unreachable"
		} else {
			body["redis"] = "ok"
		}
	}

	c.JSON(http.StatusOK, body)
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	health := NewHealthHandler(deps.Redis)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)

	var limits []gin.HandlerFunc
	if deps.Limiter != nil {
		limits = append(limits, deps.Limiter.Middleware())
		RegisterRateLimitRoutes(router.Group("/api/v1"), deps.Limiter)
	}

	suggestHandler := NewSuggestHandler(deps.Suggester, deps.Logger)
	// The browser client calls the functions path; /api/v1 is the versioned API
	suggestHandler.RegisterRoutes(router.Group("/functions/v1", limits...))
	suggestHandler.RegisterRoutes(router.Group("/api/v1", limits...))
}

// RegisterRateLimitRoutes exposes the caller's remaining suggestion budget
func RegisterRateLimitRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	router.GET("/rate-limits/suggest-recipes", func(c *gin.Context) {
		remaining, resetTime, err := limiter.Remaining(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
			return
		}

		cfg := limiter.Config()
		c.JSON(http.StatusOK, gin.H{
			"limit":      cfg.Limit,
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     cfg.Window.String(),
		})
	})
}
