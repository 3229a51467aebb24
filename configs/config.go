package configs

import (
	"os"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Market  MarketConfig
	Auth    AuthConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	Driver     string // "file" or "sqlite"
	DataDir    string // base directory for the file driver
	SQLitePath string // database path for the sqlite driver
}

// MarketConfig holds market data feed configuration
type MarketConfig struct {
	BaseURL string        // Pasardana API base URL
	MaxAge  time.Duration // staleness window for the cached quote batch
	Timeout time.Duration // upstream HTTP call timeout
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Storage: StorageConfig{
			Driver:     getEnv("STORAGE_DRIVER", "file"),
			DataDir:    getEnv("DATA_DIR", "data"),
			SQLitePath: getEnv("SQLITE_PATH", "data/sahamwatch.db"),
		},
		Market: MarketConfig{
			BaseURL: getEnv("PASARDANA_URL", "https://pasardana.id"),
			MaxAge:  getDurationEnv("QUOTE_MAX_AGE", time.Hour),
			Timeout: getDurationEnv("QUOTE_FETCH_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "default-secret-change-in-production"),
			TokenTTL:  getDurationEnv("TOKEN_TTL", 24*time.Hour),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
