package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            string
	DBConn          string
	LogLevel        string
	JWTSecret       string
	CBRURL          string
	RateMargin      float64
	RateRefreshSpec string
	RateFallback    bool
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
}

// NewConfig loads configuration from environment variables, reading .env first if present
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	margin, err := strconv.ParseFloat(getEnv("RATE_MARGIN", "5.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_MARGIN: %w", err)
	}

	fallback, err := strconv.ParseBool(getEnv("RATE_FALLBACK", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_FALLBACK: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=rental sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		CBRURL:          getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		RateMargin:      margin,
		RateRefreshSpec: getEnv("RATE_REFRESH_SPEC", "0 6 * * *"),
		RateFallback:    fallback,
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "25"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "reports@rental-analyzer.local"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
