package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	QuoteBaseURL string
	QuoteAPIKey  string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	StartingCash decimal.Decimal
	Workers      int
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "trader"),
		DBPassword:   getEnv("DB_PASSWORD", "trading123"),
		DBName:       getEnv("DB_NAME", "finance_db"),
		QuoteBaseURL: getEnv("QUOTE_BASE_URL", "https://cloud.iexapis.com/stable"),
		QuoteAPIKey:  strings.TrimSpace(os.Getenv("API_KEY")),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:    getEnv("JWT_ISSUER", "finance-backend"),
	}

	minutes := getEnv("JWT_TTL_MINUTES", "60")
	ttl, err := strconv.Atoi(minutes)
	if err != nil || ttl <= 0 {
		ttl = 60
	}
	cfg.JWTTTL = time.Duration(ttl) * time.Minute

	cash, err := decimal.NewFromString(getEnv("STARTING_CASH", "10000.00"))
	if err != nil || !cash.IsPositive() {
		return Config{}, errors.New("STARTING_CASH must be a positive decimal")
	}
	cfg.StartingCash = cash

	workers, err := strconv.Atoi(getEnv("NUM_WORKERS", "5"))
	if err != nil || workers < 1 {
		workers = 5
	}
	cfg.Workers = workers

	if cfg.QuoteAPIKey == "" {
		return Config{}, errors.New("API_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// getEnv returns the environment variable or a default.
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}
