// Package config loads process configuration from the environment.
// A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all process settings. Credentials come from the environment;
// everything else has a sensible default.
type Config struct {
	// Transport
	TelegramToken string
	Port          int

	// Completion endpoint
	LLMAPIKey   string
	LLMAPIBase  string
	Model       string
	ImageModel  string
	MaxTokens   int
	Temperature float64

	// Conversation handling
	SystemPrompt string
	HistoryLimit int
	TurnTimeout  int // seconds

	// Optional collaborators
	DatabaseURL string
	RedisURL    string
}

// FromEnv loads a .env file if one exists and reads all settings.
func FromEnv() Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		Port:          envInt("PORT", 8080),

		LLMAPIKey:   firstEnv("LLM_API_KEY", "GROK_API_KEY", "OPENAI_API_KEY"),
		LLMAPIBase:  envDefault("LLM_API_BASE", "https://api.x.ai/v1"),
		Model:       envDefault("LLM_MODEL", "grok-4-1-fast-reasoning"),
		ImageModel:  envDefault("IMAGE_MODEL", "flux"),
		MaxTokens:   envInt("MAX_TOKENS", 512),
		Temperature: envFloat("TEMPERATURE", 0.7),

		SystemPrompt: os.Getenv("SYSTEM_PROMPT"),
		HistoryLimit: envInt("HISTORY_LIMIT", 40),
		TurnTimeout:  envInt("TURN_TIMEOUT", 120),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}
}

// Problems reports missing credentials. A non-empty result means the process
// can start but must serve an explicit misconfigured state instead of
// handling turns.
func (c Config) Problems() []string {
	var problems []string
	if c.TelegramToken == "" {
		problems = append(problems, "TELEGRAM_BOT_TOKEN is not set")
	}
	if c.LLMAPIKey == "" {
		problems = append(problems, "LLM_API_KEY (or GROK_API_KEY / OPENAI_API_KEY) is not set")
	}
	return problems
}

// Ready reports whether the process is fully configured.
func (c Config) Ready() bool {
	return len(c.Problems()) == 0
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: invalid %s=%q, using %d\n", key, v, fallback)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: invalid %s=%q, using %g\n", key, v, fallback)
		return fallback
	}
	return f
}
