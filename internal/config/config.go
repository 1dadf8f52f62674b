package config

import (
	"os"
)

type Config struct {
	DatabaseURL string
	Port        string
	Environment string

	// OpenAI-kompatibler Endpoint für die Prospekt-Bildextraktion
	ExtractorAPIKey  string
	ExtractorBaseURL string
	ExtractorModel   string
}

func Load() *Config {
	// Default MySQL connection string
	defaultDSN := "root:prospekt@tcp(localhost:3306)/prospekt?charset=utf8mb4&parseTime=True&loc=Local"

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", defaultDSN),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		ExtractorAPIKey:  getEnv("EXTRACTOR_API_KEY", ""),
		ExtractorBaseURL: getEnv("EXTRACTOR_BASE_URL", "https://api.openai.com/v1"),
		ExtractorModel:   getEnv("EXTRACTOR_MODEL", "gpt-4o"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
