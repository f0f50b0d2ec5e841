package config

import (
	"os"
	"strconv"
	"time"
)

// Auth modes
const (
	AuthModeNone    = "none"
	AuthModeGateway = "gateway"
	AuthModeJWT     = "jwt"
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string
	LogLevel    string
	LogFile     string

	// Observability
	SentryDSN string

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	// - "jwt": Verify HS256 bearer tokens signed with JWTSecret
	AuthMode  string
	JWTSecret string

	// Instrument preset and optional fret count override (0 keeps the preset's)
	Instrument string
	FretCount  int

	// Guide cache
	CacheBackend  string // memory, redis or postgres
	CacheCapacity int
	CacheTTL      time.Duration
	RedisURL      string
	DatabaseURL   string

	// Offline scale catalog enrichment
	CatalogEnabled bool
}

func Load() *Config {
	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		AuthMode:       getEnv("AUTH_MODE", AuthModeNone), // Default to no auth for self-hosted
		JWTSecret:      getEnv("JWT_SECRET", ""),
		Instrument:     getEnv("INSTRUMENT", ""),
		FretCount:      getEnvInt("FRET_COUNT", 0),
		CacheBackend:   getEnv("CACHE_BACKEND", "memory"),
		CacheCapacity:  getEnvInt("CACHE_CAPACITY", 512),
		CacheTTL:       getEnvDuration("CACHE_TTL", 24*time.Hour),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CatalogEnabled: getEnv("CATALOG_ENABLED", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to defaultValue when the variable is unset or not a number
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go durations ("90m") or plain seconds ("3600")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

// IsGatewayMode returns true if running behind a trusted gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == AuthModeGateway
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
