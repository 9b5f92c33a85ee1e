package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server
	Port          string
	PublicBaseURL string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth (single operator)
	AdminUsername    string
	AdminPassword    string
	AdminDisplayName string
	AdminRole        string
	JWTSecret        string

	// Generation service (GLM, OpenAI-compatible chat completions)
	GLMAPIKey         string
	GLMAPIURL         string
	GLMModel          string
	GenMaxTokens      int
	GenTimeoutSeconds int
}

func Load() *Config {
	maxTokens, _ := strconv.Atoi(getEnv("GEN_MAX_TOKENS", "8192"))
	genTimeout, _ := strconv.Atoi(getEnv("GEN_TIMEOUT_SECONDS", "120"))
	return &Config{
		Port:              getEnv("PORT", "8098"),
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8098"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "sitesmith_db"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminDisplayName:  getEnv("ADMIN_DISPLAY_NAME", "Admin"),
		AdminRole:         getEnv("ADMIN_ROLE", "admin"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		GLMAPIKey:         getEnv("GLM_API_KEY", ""),
		GLMAPIURL:         getEnv("GLM_API_URL", "https://api.z.ai/api/paas/v4/chat/completions"),
		GLMModel:          getEnv("GLM_MODEL", "glm-5"),
		GenMaxTokens:      maxTokens,
		GenTimeoutSeconds: genTimeout,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
