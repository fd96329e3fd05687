package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAIGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultAIModel      = "google/gemini-2.5-flash"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Proxies whose X-Forwarded-For is believed; empty trusts none
	TrustedProxies []string

	// Logging configuration
	LogLevel  string
	LogFormat string

	// AI gateway configuration
	AIGatewayAPIKey string
	AIGatewayURL    string
	AIModel         string
	AITimeout       time.Duration
	StrictRecipes   bool

	// Rate limiting; disabled when RedisURL is empty
	RedisURL          string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development || env == Test {
		// A missing .env file is fine, the environment may already be populated
		_ = godotenv.Load()
	}

	v := newViper()
	cfg := &Config{
		ServerPort:        v.GetString("SERVER_PORT"),
		ServerHost:        v.GetString("SERVER_HOST"),
		TrustedProxies:    splitList(v.GetString("TRUSTED_PROXIES")),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:         strings.ToLower(v.GetString("LOG_FORMAT")),
		AIGatewayURL:      v.GetString("AI_GATEWAY_URL"),
		AIModel:           v.GetString("AI_MODEL"),
		AITimeout:         v.GetDuration("AI_TIMEOUT"),
		StrictRecipes:     v.GetBool("STRICT_RECIPES"),
		RedisURL:          v.GetString("REDIS_URL"),
		RateLimitRequests: v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:   v.GetDuration("RATE_LIMIT_WINDOW"),
	}

	apiKey, err := loadAPIKey(env, v)
	if err != nil {
		return nil, fmt.Errorf("failed to load AI gateway credential: %w", err)
	}
	cfg.AIGatewayAPIKey = apiKey

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("AI_GATEWAY_URL", DefaultAIGatewayURL)
	v.SetDefault("AI_MODEL", DefaultAIModel)
	v.SetDefault("AI_TIMEOUT", 60*time.Second)
	v.SetDefault("STRICT_RECIPES", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)

	return v
}

// loadAPIKey resolves the gateway credential. Production reads ONLY the Docker
// secret; every other environment takes the variable first, then the file it
// points at. An empty result is not an error here.
func loadAPIKey(env Environment, v *viper.Viper) (string, error) {
	if env == Production {
		return readSecret("ai_gateway_api_key"), nil
	}

	if key := strings.TrimSpace(v.GetString("AI_GATEWAY_API_KEY")); key != "" {
		return key, nil
	}

	keyFile := v.GetString("AI_GATEWAY_API_KEY_FILE")
	if keyFile == "" {
		return "", nil
	}

	content, err := os.ReadFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

// HasAIGatewayAPIKey reports whether a gateway credential was configured
func (c *Config) HasAIGatewayAPIKey() bool {
	return c.AIGatewayAPIKey != ""
}

// RateLimitEnabled reports whether the inbound rate limiter should be wired
func (c *Config) RateLimitEnabled() bool {
	return c.RedisURL != ""
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// splitList parses a comma-separated env value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
