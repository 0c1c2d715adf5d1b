package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Auth modes understood by the identity middleware.
const (
	AuthModeJWT        = "jwt"
	AuthModeAuthorizer = "authorizer"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // sqlite, mysql, postgres, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string // file path for sqlite
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string // silent, error, warn, info

	// Identity resolution
	AuthMode      string
	JWTSecret     string
	AuthzURL      string
	AuthzClientID string

	// Logging
	LogLevel string
	LogFile  string

	// Domain rules
	ContributionCeiling bool
	MarketplaceBaseURL  string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first but never overrides the real environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "3000"),
		DBType:              strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBDatabase:          getEnv("DB_DATABASE", "nftune.db"),
		DBUser:              getEnv("DB_USER", ""),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:   getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:          getEnv("DB_LOG_LEVEL", "warn"),
		AuthMode:            strings.ToLower(getEnv("AUTH_MODE", AuthModeJWT)),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		AuthzURL:            getEnv("AUTHZ_URL", ""),
		AuthzClientID:       getEnv("AUTHZ_CLIENT_ID", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFile:             getEnv("LOG_FILE", ""),
		ContributionCeiling: getEnvAsBool("CONTRIBUTION_CEILING", true),
		MarketplaceBaseURL:  getEnv("MARKETPLACE_BASE_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the settings required by the selected modes are present
func (c *Config) Validate() error {
	if c.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if c.DBType != "sqlite" && c.DBUser == "" {
		return fmt.Errorf("DB_USER is required for DB_TYPE %s", c.DBType)
	}

	switch c.AuthMode {
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
		}
	case AuthModeAuthorizer:
		if c.AuthzURL == "" {
			return fmt.Errorf("AUTHZ_URL is required when AUTH_MODE is authorizer")
		}
		if c.AuthzClientID == "" {
			return fmt.Errorf("AUTHZ_CLIENT_ID is required when AUTH_MODE is authorizer")
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE: %s", c.AuthMode)
	}

	return nil
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
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
