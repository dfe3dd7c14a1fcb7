package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// OpenRouter (primary AI backend)
	OpenRouterAPIKey string
	OpenRouterModel  string

	// Cohere (first fallback)
	CohereAPIKey string
	CohereModel  string

	// Gemini (second fallback, optional)
	GeminiAPIKey string

	// AI behavior
	AITimeoutSeconds int
	QuizBatchDelayMS int

	// Sessions
	SessionSecret string

	// Uploads
	MaxUploadMB int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "5000"),
		Env:              getEnvOrDefault("ENV", "development"),
		OpenRouterAPIKey: mustGetEnv("API_KEY"),
		OpenRouterModel:  getEnvOrDefault("OPENROUTER_MODEL", "deepseek/deepseek-chat-v3-0324:free"),
		CohereAPIKey:     getEnvOrDefault("COHERE_KEY", ""),
		CohereModel:      getEnvOrDefault("COHERE_MODEL", "command-r-plus"),
		GeminiAPIKey:     getEnvOrDefault("GEMINI_API_KEY", ""),
		AITimeoutSeconds: getEnvAsIntOrDefault("AI_TIMEOUT_SECONDS", 60),
		QuizBatchDelayMS: getEnvAsIntOrDefault("QUIZ_BATCH_DELAY_MS", 1000),
		SessionSecret:    mustGetEnv("SESSION_SECRET"),
		MaxUploadMB:      getEnvAsIntOrDefault("MAX_UPLOAD_MB", 10),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
