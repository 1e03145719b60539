package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	LogFile       string // Optional: copy of the log, rotated by size
	LogMaxSizeMB  int    // Rotation size (default: 100)
	LogMaxBackups int    // Rotated files kept (default: 5)
	LogMaxAgeDays int    // Days a rotated file is kept (default: 28)

	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Subscription sweep interval (default: 1h)
	ExpiryWarningWindow  time.Duration // Clients ending within this window are logged (default: 7 days)
	Timezone             string        // Business time zone for "today" (default: UTC)
	DefaultLang          string        // Language used when the request names none (default: ar)

	DBDriver     string // sqlite or postgres (default: sqlite)
	DatabaseFile string // SQLite database file (default: ./agentdesk.db)
	DatabaseURL  string // PostgreSQL DSN, required for the postgres driver

	PepperFile     string        // File holding the password pepper (default: ./pepper)
	BootstrapToken string        // Optional: bootstrap over HTTP is disabled when empty
	Issuer         string        // Token issuer, also shown in authenticator apps (default: agentdesk)
	SessionKeyFile string        // Ed25519 signing key, created on first start (default: ./session.key)
	AccessTokenTTL time.Duration // Session lifetime (default: 12h)

	LockBackend   string        // memory or redis (default: memory)
	RedisAddr     string        // Redis address for the redis lock backend (default: localhost:6379)
	RedisPassword string        // Optional
	RedisDB       int           // Redis database number (default: 0)
	LockTTL       time.Duration // Expiry of a held redis lock (default: 30s)

	OTelEndpoint     string  // OTLP/HTTP collector; tracing is off when empty
	OTelSamplerRatio float64 // Fraction of root spans sampled (default: 1)
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; variables already
// set in the environment win over it.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		LogFile:       os.Getenv("LOG_FILE"),
		LogMaxSizeMB:  getEnvIntOrDefault("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvIntOrDefault("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvIntOrDefault("LOG_MAX_AGE_DAYS", 28),

		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		ExpiryWarningWindow:  getEnvDurationOrDefault("EXPIRY_WARNING_WINDOW", 7*24*time.Hour),
		Timezone:             getEnvOrDefault("APP_TIMEZONE", "UTC"),
		DefaultLang:          getEnvOrDefault("DEFAULT_LANG", "ar"),

		DBDriver:     getEnvOrDefault("DB_DRIVER", "sqlite"),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "agentdesk.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		PepperFile:     getEnvOrDefault("PEPPER_FILE", "pepper"),
		BootstrapToken: os.Getenv("BOOTSTRAP_TOKEN"),
		Issuer:         getEnvOrDefault("AUTH_ISSUER", "agentdesk"),
		SessionKeyFile: getEnvOrDefault("SESSION_KEY_FILE", "session.key"),
		AccessTokenTTL: getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 12*time.Hour),

		LockBackend:   getEnvOrDefault("LOCK_BACKEND", "memory"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),
		LockTTL:       getEnvDurationOrDefault("LOCK_TTL", 30*time.Second),

		OTelEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTelSamplerRatio: getEnvFloatOrDefault("OTEL_SAMPLER_RATIO", 1),
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			return errors.New("DATABASE_FILE is required for the sqlite driver")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", c.DBDriver)
	}

	switch c.LockBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported LOCK_BACKEND %q (want memory or redis)", c.LockBackend)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
