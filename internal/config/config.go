// Package config loads application configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env  string // APP_ENV (e.g. "dev", "prod")
	Port string // APP_PORT

	DBUser string // DB_USER
	DBPass string // DB_PASS (empty allowed)
	DBHost string // DB_HOST
	DBPort string // DB_PORT
	DBName string // DB_NAME

	MemberTokenSecret string        // MEMBER_TOKEN_SECRET signs login tokens
	MemberTokenTTL    time.Duration // MEMBER_TOKEN_TTL_MIN

	// CancelPolicy is CANCEL_PARTICIPATION_POLICY: "cascade" or "restrict".
	CancelPolicy string
	LogLevel     string // LOG_LEVEL
	RabbitURL    string // RABBITMQ_URL; empty disables event publishing

	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding variables that are already set.  A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads and validates the configuration.  Every missing required key
// is reported in a single error.
func Load() (Config, error) {
	var missing []string
	must := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:               getenv("APP_ENV", "dev"),
		Port:              getenv("APP_PORT", "8080"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"),
		DBHost:            must("DB_HOST"),
		DBPort:            getenv("DB_PORT", "3306"),
		DBName:            must("DB_NAME"),
		MemberTokenSecret: must("MEMBER_TOKEN_SECRET"),
		CancelPolicy:      getenv("CANCEL_PARTICIPATION_POLICY", "cascade"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		RabbitURL:         os.Getenv("RABBITMQ_URL"),
		Redis:             LoadRedisConfig(),
		Cache:             LoadCacheConfig(),
		RateLimit:         LoadRateLimitConfig(),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}

	ttl, err := strconv.Atoi(getenv("MEMBER_TOKEN_TTL_MIN", "60"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("invalid int for MEMBER_TOKEN_TTL_MIN: %q", os.Getenv("MEMBER_TOKEN_TTL_MIN"))
	}
	cfg.MemberTokenTTL = time.Duration(ttl) * time.Minute

	switch strings.ToLower(cfg.CancelPolicy) {
	case "cascade", "restrict":
	default:
		return Config{}, fmt.Errorf("invalid CANCEL_PARTICIPATION_POLICY %q (want cascade or restrict)", cfg.CancelPolicy)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }
