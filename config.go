package jecnasupl

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Endpoint    string
	ClassSymbol string
	CacheTTL    time.Duration
}

// LoadConfig reads the client configuration from the environment,
// picking up a .env file when one is present.
func LoadConfig() Config {
	_ = godotenv.Load()

	ttlMinutes, err := strconv.Atoi(getEnv("SUPL_CACHE_TTL_MINUTES", "5"))
	if err != nil || ttlMinutes <= 0 {
		ttlMinutes = 5
	}

	return Config{
		Endpoint:    getEnv("SUPL_ENDPOINT", ""),
		ClassSymbol: getEnv("SUPL_CLASS", ""),
		CacheTTL:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// NewClientFromConfig builds a client from a loaded Config, applying the
// same validation as NewClient.
func NewClientFromConfig(cfg Config) (*Client, error) {
	return newClient(cfg.Endpoint, cfg.ClassSymbol, cfg.CacheTTL)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
