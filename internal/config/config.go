package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv             = "development"
	defaultReserveMaxAttempts = 3
	defaultJWTTTL             = 24 * time.Hour
)

type Config struct {
	AppEnv   string
	SeedFile string

	// Order assembly
	ReserveMaxAttempts int
	CreateOrderTimeout time.Duration

	// Auth
	JWTSecret string
	JWTTTL    time.Duration
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", defaultAppEnv),
		SeedFile:           os.Getenv("SEED_FILE"),
		ReserveMaxAttempts: defaultReserveMaxAttempts,
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTTTL:             defaultJWTTTL,
	}

	if v := os.Getenv("ORDER_RESERVE_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid ORDER_RESERVE_MAX_ATTEMPTS %q: must be a positive integer", v)
		}
		cfg.ReserveMaxAttempts = n
	}

	if v := os.Getenv("ORDER_CREATE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid ORDER_CREATE_TIMEOUT %q", v)
		}
		cfg.CreateOrderTimeout = d
	}

	if v := os.Getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid JWT_TTL %q", v)
		}
		cfg.JWTTTL = d
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
