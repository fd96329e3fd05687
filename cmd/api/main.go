package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/logging"
	"github.com/pageza/pantry-chef/backend/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, "pantry-chef-api")
	gin.SetMode(config.GetEnvironment().GinMode())

	// Create and start server
	srv := server.NewFromConfig(context.Background(), cfg, logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal().Err(err).Msg("Server error")
		}
		return
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Received signal")
	}

	// Gracefully shutdown the server
	logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server shutdown error")
	}
	logger.Info().Msg("Server stopped")
}
