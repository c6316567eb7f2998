package config

import (
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Dashboard DashboardConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	RateLimitPerSecond int
	RateLimitBurst     int
}

type DatasetConfig struct {
	// Path to the source spreadsheet (.xlsx or .csv)
	Path string
}

type DashboardConfig struct {
	// Currency is the ISO-4217 code used when formatting revenue figures
	Currency string
	// DeclineAlertThreshold is the decline-revenue share (percent) above
	// which the dashboard reports an alert condition
	DeclineAlertThreshold float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 100),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 200),
		},
		Dataset: DatasetConfig{
			Path: getEnv("DATASET_PATH", "NR_dataset.xlsx"),
		},
		Dashboard: DashboardConfig{
			Currency:              getEnv("DASHBOARD_CURRENCY", "USD"),
			DeclineAlertThreshold: getEnvAsFloat("DECLINE_ALERT_THRESHOLD", 25.0),
		},
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
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
