package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pageza/pantry-chef/backend/config"
)

const connectTimeout = 5 * time.Second

// ErrRedisDisabled is returned when no Redis URL is configured
var ErrRedisDisabled = errors.New("redis is not configured")

// NewRedisClient connects to the Redis instance behind cfg.RedisURL
func NewRedisClient(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*redis.Client, error) {
	if !cfg.RateLimitEnabled() {
		return nil, ErrRedisDisabled
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info().Str("addr", opts.Addr).Msg("Successfully connected to Redis")
	return client, nil
}
