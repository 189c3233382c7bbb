package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port            string
	PublicURL       string
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Database configuration
	DBType            string // mysql, mariadb, postgres, sqlite, sqlite3, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string // file path or DSN for sqlite
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogSlow         time.Duration
	SeedCatalog       bool

	// Session provider configuration
	AuthProvider  string // jwt or authorizer
	JWTSecret     string
	JWTTTL        time.Duration
	AuthzURL      string
	AuthzClientID string

	// Attendance confirmation credits the event kilometers and evaluates unlocks
	AttendanceCreditsProgress bool

	// Logging
	LogLevel  string
	LogFormat string // text or json
}

// Load loads configuration from environment variables.
// A .env file in the working directory is applied first when present; values
// already in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                      getEnv("PORT", "3000"),
		PublicURL:                 getEnv("PUBLIC_URL", "http://localhost:3000"),
		RateLimitMax:              getEnvAsInt("RATE_LIMIT_MAX", 120),
		RateLimitWindow:           getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		DBType:                    strings.ToLower(getEnv("DB_TYPE", "postgres")),
		DBHost:                    getEnv("DB_HOST", "localhost"),
		DBPort:                    getEnv("DB_PORT", "5432"),
		DBDatabase:                getEnv("DB_DATABASE", ""),
		DBUser:                    getEnv("DB_USER", ""),
		DBPassword:                getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:         getEnvAsInt("DB_CONNECTION_LIMIT", 10),
		DBLogSlow:                 time.Duration(getEnvAsInt("DB_LOG_SLOW_MS", 200)) * time.Millisecond,
		SeedCatalog:               getEnvAsBool("SEED_CATALOG", true),
		AuthProvider:              strings.ToLower(getEnv("AUTH_PROVIDER", "jwt")),
		JWTSecret:                 getEnv("JWT_SECRET", ""),
		JWTTTL:                    getEnvAsDuration("JWT_TTL", 72*time.Hour),
		AuthzURL:                  getEnv("AUTHZ_URL", ""),
		AuthzClientID:             getEnv("AUTHZ_CLIENT_ID", ""),
		AttendanceCreditsProgress: getEnvAsBool("ATTENDANCE_CREDITS_PROGRESS", false),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		LogFormat:                 getEnv("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields for the selected database and session provider
func (cfg *Config) Validate() error {
	if cfg.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if !cfg.IsSQLite() && cfg.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}

	switch cfg.AuthProvider {
	case "jwt":
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_PROVIDER=jwt")
		}
	case "authorizer":
		if cfg.AuthzURL == "" {
			return fmt.Errorf("AUTHZ_URL is required when AUTH_PROVIDER=authorizer")
		}
		if cfg.AuthzClientID == "" {
			return fmt.Errorf("AUTHZ_CLIENT_ID is required when AUTH_PROVIDER=authorizer")
		}
	default:
		return fmt.Errorf("unsupported AUTH_PROVIDER: %s", cfg.AuthProvider)
	}

	return nil
}

// IsSQLite reports whether the configured database is a sqlite flavour
func (cfg *Config) IsSQLite() bool {
	return cfg.DBType == "sqlite" || cfg.DBType == "sqlite3"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go duration strings ("90s", "72h")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
