package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	AppURL      string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Payment link provider
	PaymentAPIURL        string
	PaymentAPIKey        string
	PaymentWebhookSecret string
	PaymentTestMode      bool // When true, payment links are stubbed locally
	// Offer editor
	AutosaveDebounce time.Duration
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		DBPath:               getEnv("DB_PATH", "db/app.db"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		AppURL:               getEnv("APP_URL", "http://localhost:8080"),
		ResendAPIKey:         getEnv("RESEND_API_KEY", ""),
		EmailFrom:            getEnv("EMAIL_FROM", "offers@tafelfreund.example"),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "Tafelfreund Catering"),
		EmailTestMode:        getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		PaymentAPIURL:        getEnv("PAYMENT_API_URL", "https://api.payments.example/v1"),
		PaymentAPIKey:        getEnv("PAYMENT_API_KEY", ""),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		PaymentTestMode:      getEnvBool("PAYMENT_TEST_MODE", true),
		AutosaveDebounce:     getEnvDuration("AUTOSAVE_DEBOUNCE_MS", 800) * time.Millisecond,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue int) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return time.Duration(defaultValue)
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("[WARNING] Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(n)
}
