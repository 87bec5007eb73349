package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Env          string
	LogLevel     string
	LogFile      string
	AssistantURL string
	ChatTimeout  time.Duration
	UserAgent    string
	Greeting     string
	MetricsAddr  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      getEnv("LOG_FILE", ""),
		AssistantURL: strings.TrimRight(getEnv("ASSISTANT_URL", "http://localhost:8000"), "/"),
		ChatTimeout:  getEnvAsDuration("CHAT_TIMEOUT", 30*time.Second),
		UserAgent:    getEnv("USER_AGENT", ""),
		Greeting:     getEnv("GREETING", ""),
		MetricsAddr:  getEnv("METRICS_ADDR", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
