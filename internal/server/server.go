package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/api"
	"github.com/pageza/pantry-chef/backend/internal/database"
	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

const (
	readHeaderTimeout = 10 * time.Second
	// headroom on top of the AI timeout for writing the response
	writeTimeoutSlack = 10 * time.Second
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	redis  *redis.Client
	logger zerolog.Logger
}

// New creates a server around already-built dependencies
func New(cfg *config.Config, deps api.Dependencies) *Server {
	logger := deps.Logger

	router := gin.New()
	// ClientIP keys the rate limiter, so forwarded headers only count from known proxies
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn().Err(err).Msg("Invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.CORS(),
		middleware.Preflight(),
	)
	api.RegisterRoutes(router, deps)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      cfg.AITimeout + writeTimeoutSlack,
		},
		logger: logger,
	}
}

// NewFromConfig builds the LLM client, the suggestion service and, when
// REDIS_URL is set, the inbound rate limiter. A Redis outage at startup
// disables limiting instead of failing.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *Server {
	llm := service.NewLLMClient(service.LLMConfig{
		APIKey:  cfg.AIGatewayAPIKey,
		APIURL:  cfg.AIGatewayURL,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	})
	if !llm.HasCredential() {
		logger.Warn().Msg("AI_GATEWAY_API_KEY is not set; suggestion requests will fail with a configuration error")
	}

	deps := api.Dependencies{
		Suggester: service.NewSuggestionService(llm,
			service.WithLogger(logger),
			service.WithStrictValidation(cfg.StrictRecipes),
		),
		Logger: logger,
	}

	var redisClient *redis.Client
	if cfg.RateLimitEnabled() {
		client, err := database.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Redis, continuing without rate limiting")
		} else {
			redisClient = client
			deps.Redis = client
			deps.Limiter = middleware.NewRateLimiter(client, middleware.RateLimitConfig{
				Window: cfg.RateLimitWindow,
				Limit:  cfg.RateLimitRequests,
			}, logger)
		}
	}

	s := New(cfg, deps)
	s.redis = redisClient
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("Starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases the Redis connection
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
