package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DocsPath             string  // directory with index.json and scores/
	DatabasePath         string  // results database
	ProjectionConfigPath string  // optional YAML tier table override
	CostOfCapital        float64 // annual %, the hurdle rate
	MaxScoreAgeDays      int     // recency window for routine runs
	ValidationSchedule   string  // cron expression for the daily run
	LogLevel             string
	Port                 int
	DevMode              bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DocsPath:             getEnv("DOCS_PATH", "docs"),
		DatabasePath:         getEnv("DATABASE_PATH", "./data/validation.db"),
		ProjectionConfigPath: getEnv("PROJECTION_CONFIG", ""),
		CostOfCapital:        getEnvAsFloat("COST_OF_CAPITAL", 10.0),
		MaxScoreAgeDays:      getEnvAsInt("MAX_SCORE_AGE_DAYS", 100),
		ValidationSchedule:   getEnv("VALIDATION_SCHEDULE", "0 0 18 * * MON-FRI"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Port:                 getEnvAsInt("PORT", 8080),
		DevMode:              getEnvAsBool("DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DocsPath == "" {
		return fmt.Errorf("DOCS_PATH is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.CostOfCapital < 0 {
		return fmt.Errorf("COST_OF_CAPITAL must not be negative")
	}
	return nil
}

// Helper functions
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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
