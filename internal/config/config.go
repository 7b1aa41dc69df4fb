package config

import (
	"os"
	"strconv"
	"time"

	"pitchlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Statcast StatcastConfig
	Cache    CacheConfig
	Batch    BatchConfig
	Paths    PathConfig
}

// DatabaseConfig holds database connection settings. The URL is optional;
// without it the app runs fetch-only with no persistence.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port       string
	HealthPort string
	GinMode    string
}

// StatcastConfig holds upstream pitch data source settings
type StatcastConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig holds in-memory season cache settings
type CacheConfig struct {
	SeasonTTL time.Duration
}

// BatchConfig holds batch regression settings
type BatchConfig struct {
	Concurrency int
}

// PathConfig holds file system paths
type PathConfig struct {
	ExcelFile string
	ExportDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:       getEnvOrDefault("PORT", "8080"),
			HealthPort: getEnvOrDefault("HEALTH_PORT", "8081"),
			GinMode:    getEnvOrDefault("GIN_MODE", "release"),
		},
		Statcast: StatcastConfig{
			BaseURL: getEnvOrDefault("STATCAST_BASE_URL", "https://baseballsavant.mlb.com/statcast_search/csv"),
			Timeout: getEnvDurationOrDefault("STATCAST_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			SeasonTTL: getEnvDurationOrDefault("SEASON_CACHE_TTL", time.Hour),
		},
		Batch: BatchConfig{
			Concurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 4),
		},
		Paths: PathConfig{
			ExcelFile: getEnvOrDefault("EXCEL_FILE", ""),
			ExportDir: getEnvOrDefault("EXPORT_DIR", "."),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Statcast.BaseURL == "" {
		return errors.ConfigInvalid("statcast base URL is required")
	}
	if config.Batch.Concurrency <= 0 {
		return errors.ConfigInvalid("batch concurrency must be positive")
	}
	if config.Cache.SeasonTTL <= 0 {
		return errors.ConfigInvalid("season cache TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
