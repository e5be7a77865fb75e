package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// BaseCurrency is the fallback display currency for new scenarios.
	BaseCurrency string
	// DefaultUsdToEurRate applies when a reporting request omits a rate.
	// Live rate sourcing belongs to the frontend's fx provider.
	DefaultUsdToEurRate decimal.Decimal

	// RateLimit uses the limiter formatted syntax, e.g. "100-M".
	RateLimit string
	// CORSAllowOrigins is the comma-separated origin allowlist.
	CORSAllowOrigins string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("DEFAULT_USD_EUR_RATE", "0.92")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowOrigins = viper.GetString("CORS_ALLOW_ORIGINS")

	rateStr := viper.GetString("DEFAULT_USD_EUR_RATE")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		rate = decimal.RequireFromString("0.92")
		log.Printf("Warning: Invalid value for DEFAULT_USD_EUR_RATE ('%s'). Defaulting to %s.\n", rateStr, rate)
	}
	cfg.DefaultUsdToEurRate = rate

	return cfg, nil
}
