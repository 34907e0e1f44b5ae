package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server reads from the environment. A local
// secrets.env file, when present, is loaded first without overriding
// variables already set.
type Config struct {
	Port               string
	DBPath             string
	CORSOrigins        string
	CookieSecure       bool
	CookieDomain       string
	JanitorInterval    time.Duration
	RateLimitPerMinute int
}

func Load() Config {
	// Missing file is the normal case outside local development.
	_ = godotenv.Load("secrets.env")

	return Config{
		Port:               envString("PORT", "8000"),
		DBPath:             envString("DB_PATH", "pickaname.db"),
		CORSOrigins:        envString("CORS_ORIGINS", "*"),
		CookieSecure:       envBool("COOKIE_SECURE", false),
		CookieDomain:       envString("COOKIE_DOMAIN", ""),
		JanitorInterval:    envDuration("JANITOR_INTERVAL", 6*time.Hour),
		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 10),
	}
}

func envString(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	return raw == "1" || raw == "true" || raw == "TRUE"
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
