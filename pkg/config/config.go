package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	// Extraction provider
	AIProvider     string
	GeminiApiKey   string
	GeminiModel    string
	ThinkingBudget int32

	// Chroma vector search (optional)
	ChromaAPIKey   string
	ChromaTenant   string
	ChromaDatabase string

	// Snooze sweeper
	SweepInterval time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	thinkingBudget := int32(1024)
	if tb := os.Getenv("GEMINI_THINKING_BUDGET"); tb != "" {
		if parsed, err := strconv.ParseInt(tb, 10, 32); err == nil {
			thinkingBudget = int32(parsed)
		}
	}

	sweepInterval := 5 * time.Minute
	if si := os.Getenv("SNOOZE_SWEEP_INTERVAL"); si != "" {
		if parsed, err := time.ParseDuration(si); err == nil {
			sweepInterval = parsed
		}
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=emailsmart port=5432 sslmode=disable"),
		AIProvider:     getEnv("AI_PROVIDER", "gemini"),
		GeminiApiKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", ""),
		ThinkingBudget: thinkingBudget,
		ChromaAPIKey:   getEnv("CHROMA_API_KEY", ""),
		ChromaTenant:   getEnv("CHROMA_TENANT", ""),
		ChromaDatabase: getEnv("CHROMA_DATABASE", ""),
		SweepInterval:  sweepInterval,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
