package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Durations below this are almost always a missing unit ("60" parses as 60ns)
const minDuration = time.Second

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal"}
	validLogFormats = []string{"console", "json"}
)

// ValidateConfig checks the loaded values. The AI gateway credential is
// deliberately not required: a missing key is reported per request.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)}.Error())
	}

	if !contains(validLogLevels, cfg.LogLevel) {
		errs = append(errs, ValidationError{Field: "LOG_LEVEL", Message: fmt.Sprintf("must be one of %v (got: %s)", validLogLevels, cfg.LogLevel)}.Error())
	}
	if !contains(validLogFormats, cfg.LogFormat) {
		errs = append(errs, ValidationError{Field: "LOG_FORMAT", Message: fmt.Sprintf("must be one of %v (got: %s)", validLogFormats, cfg.LogFormat)}.Error())
	}

	if u, err := url.Parse(cfg.AIGatewayURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{Field: "AI_GATEWAY_URL", Message: fmt.Sprintf("invalid URL %q", cfg.AIGatewayURL)}.Error())
	}
	if cfg.AIModel == "" {
		errs = append(errs, ValidationError{Field: "AI_MODEL", Message: "is required"}.Error())
	}
	if cfg.AITimeout < minDuration {
		errs = append(errs, ValidationError{Field: "AI_TIMEOUT", Message: fmt.Sprintf("must be at least %v, with a unit such as 60s (got: %v)", minDuration, cfg.AITimeout)}.Error())
	}

	for _, proxy := range cfg.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				errs = append(errs, ValidationError{Field: "TRUSTED_PROXIES", Message: fmt.Sprintf("invalid IP or CIDR %q", proxy)}.Error())
			}
		}
	}

	if cfg.RateLimitEnabled() {
		if cfg.RateLimitRequests <= 0 {
			errs = append(errs, ValidationError{Field: "RATE_LIMIT_REQUESTS", Message: "must be positive"}.Error())
		}
		if cfg.RateLimitWindow < minDuration {
			errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: fmt.Sprintf("must be at least %v, with a unit such as 1m (got: %v)", minDuration, cfg.RateLimitWindow)}.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}

func contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}
