package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"eventrent/internal/pkg/validator"
)

const (
	defaultJWTAccessTTL   = "12h"
	defaultHoldTTL        = "10m"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultWebhookSecret  = "change-me-webhook-secret"
	defaultAdminTokenHash = "" // no default: the admin login is disabled until set
)

// BookingRuntimeConfig is everything the API process reads from the
// environment besides the database DSN.
type BookingRuntimeConfig struct {
	AppEnv string `validate:"required"`

	JWTSecret    string        `validate:"required"`
	JWTAccessTTL time.Duration `validate:"required"`

	// HoldTTL is how long a new hold blocks its slot before lazy expiry.
	HoldTTL time.Duration `validate:"required"`

	// WebhookSecret keys the HMAC-SHA256 check on payment callbacks.
	WebhookSecret string `validate:"required"`

	// AdminTokenBcryptHash is the bcrypt hash of the operator bootstrap
	// token exchanged for a JWT at POST /api/v1/admin/token.
	AdminTokenBcryptHash string
}

func LoadBookingRuntimeConfig() (*BookingRuntimeConfig, error) {
	cfg := &BookingRuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.WebhookSecret = strings.TrimSpace(getEnv("PAYMENT_WEBHOOK_SECRET", defaultWebhookSecret))
	cfg.AdminTokenBcryptHash = strings.TrimSpace(getEnv("ADMIN_TOKEN_BCRYPT_HASH", defaultAdminTokenHash))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.HoldTTL, err = parseDurationEnv("HOLD_TTL", defaultHoldTTL)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *BookingRuntimeConfig) error {
	if fields := validator.Validate(cfg); fields != nil {
		return fmt.Errorf("invalid booking config: %v", fields)
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.HoldTTL <= 0 {
		return fmt.Errorf("HOLD_TTL must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.WebhookSecret, defaultWebhookSecret) {
			return fmt.Errorf("in prod/release PAYMENT_WEBHOOK_SECRET must be set and not default")
		}
		if cfg.AdminTokenBcryptHash == "" {
			return fmt.Errorf("in prod/release ADMIN_TOKEN_BCRYPT_HASH must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
