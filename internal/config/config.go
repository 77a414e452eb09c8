// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port              int
	LogLevel          string
	DevMode           bool
	HistoryDBPath     string
	DefaultGridSize   int
	DefaultSamples    int
	DefaultLayers     int
	SchedulerCronSpec string
	SchedulerEnabled  bool
}

// Load reads configuration from environment variables, loading a local
// .env file first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnvAsInt("QAOA_PORT", 8080),
		LogLevel:          getEnv("QAOA_LOG_LEVEL", "info"),
		DevMode:           getEnvAsBool("QAOA_DEV_MODE", false),
		HistoryDBPath:     getEnv("QAOA_HISTORY_DB_PATH", "qaoa_history.db"),
		DefaultGridSize:   getEnvAsInt("QAOA_DEFAULT_GRID_SIZE", 8),
		DefaultSamples:    getEnvAsInt("QAOA_DEFAULT_SAMPLES", 200),
		DefaultLayers:     getEnvAsInt("QAOA_DEFAULT_LAYERS", 2),
		SchedulerCronSpec: getEnv("QAOA_SCHEDULER_CRON", "@every 1h"),
		SchedulerEnabled:  getEnvAsBool("QAOA_SCHEDULER_ENABLED", true),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
