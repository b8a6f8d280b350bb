// Package config loads runtime configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// Provider selects the LLM backend used for compatibility adjudication.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Config holds all configuration values.
type Config struct {
	// Component database (sqlite)
	DBPath string

	// Adjudicator LLM
	LLMProvider     Provider
	LLMModel        string
	OllamaHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Power estimation overrides (empty = built-in defaults)
	HeuristicsFile string

	// HTTP API
	ListenAddr string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables. LLM defaults favor a
// local Ollama setup.
func Load() Config {
	return Config{
		DBPath: getEnv("RIGCHECK_DB", "hardware.db"),

		LLMProvider:     Provider(getEnv("RIGCHECK_LLM_PROVIDER", "ollama")),
		LLMModel:        getEnv("RIGCHECK_LLM_MODEL", "qwen3:14b-q4_K_M"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		HeuristicsFile: os.Getenv("RIGCHECK_HEURISTICS_FILE"),

		ListenAddr: getEnv("RIGCHECK_LISTEN_ADDR", ":8080"),

		LogFile:  getEnv("RIGCHECK_LOG_FILE", "/tmp/rigcheck.log"),
		LogLevel: parseLogLevel(getEnv("RIGCHECK_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
