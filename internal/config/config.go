package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	APIBaseURL        string
	BookingBaseURL    string
	AppEnv            string
	AdminPasswordHint string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:              getEnv("PORT", "3000"),
		APIBaseURL:        strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		BookingBaseURL:    strings.TrimRight(getEnv("BOOKING_BASE_URL", "http://localhost:3000"), "/"),
		AppEnv:            normalizeEnv(getEnv("APP_ENV", "production")),
		AdminPasswordHint: getEnv("ADMIN_PASSWORD_HINT", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

// HintEnabled gates the admin password hint to non-production builds.
func (c *Config) HintEnabled() bool {
	return c != nil && c.AdminPasswordHint != "" && c.AppEnv != "production"
}
