package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	CorpusDocumentsPath string
	CorpusFAQPath       string
	RefusalPolicyPath   string

	LLMAPIKey            string
	LLMBaseURL           string
	LLMModel             string
	LLMMaxTokens         int
	LLMTimeoutSeconds    int
	LLMRequestsPerSecond float64

	RateLimitMax           int
	RateLimitWindowSeconds int

	DefaultMaxSources int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		CorpusDocumentsPath: mustEnv("CORPUS_DOCUMENTS_PATH", "./data/documents.json"),
		CorpusFAQPath:       mustEnv("CORPUS_FAQ_PATH", "./data/orientation_faq.json"),
		RefusalPolicyPath:   mustEnv("REFUSAL_POLICY_PATH", ""),

		LLMAPIKey:            mustEnv("LLM_API_KEY", ""),
		LLMBaseURL:           mustEnv("LLM_BASE_URL", "https://api.anthropic.com"),
		LLMModel:             mustEnv("LLM_MODEL", "claude-haiku-4-5-20251001"),
		LLMMaxTokens:         mustEnvInt("LLM_MAX_TOKENS", 1800),
		LLMTimeoutSeconds:    mustEnvInt("LLM_TIMEOUT_SECONDS", 30),
		LLMRequestsPerSecond: mustEnvFloat("LLM_REQUESTS_PER_SECOND", 1),

		RateLimitMax:           mustEnvInt("RATE_LIMIT_MAX", 20),
		RateLimitWindowSeconds: mustEnvInt("RATE_LIMIT_WINDOW_SECONDS", 600),

		DefaultMaxSources: mustEnvInt("DEFAULT_MAX_SOURCES", 6),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
