package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Environment string
	LogLevel    slog.Level

	// LLM backend for the player model
	LLMProvider     string // "anthropic", "ollama" or "mock"
	ModelName       string
	AnthropicAPIKey string
	OllamaURL       string

	// Episode orchestration
	InstancesPath string // instances.json to run
	Parallelism   int    // concurrent episodes in a batch
	MaxRetries    int    // unparseable-response retries before abort

	// Result persistence
	RedisURL   string
	ExportDir  string // parquet archive output, empty disables export
	ResultsTTL string // optional TTL for stored results, e.g. "24h"
}

func Load() *Config {
	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:     getEnv("LLM_PROVIDER", "mock"),
		ModelName:       getEnv("MODEL_NAME", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		InstancesPath:   getEnv("INSTANCES_PATH", "./data/portalgame/instances.json"),
		Parallelism:     getEnvInt("PARALLELISM", 4),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		ExportDir:       getEnv("EXPORT_DIR", ""),
		ResultsTTL:      getEnv("RESULTS_TTL", ""),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
