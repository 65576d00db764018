package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	CronTriggerSecret string
	// TriggerRateLimit is a ulule/limiter formatted rate, e.g. "10-M".
	TriggerRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CRON_TRIGGER_SECRET", "")
	viper.SetDefault("TRIGGER_RATE_LIMIT", "10-M")

	// Environment variables override defaults and .env file values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.CronTriggerSecret = viper.GetString("CRON_TRIGGER_SECRET")
	if cfg.CronTriggerSecret == "" {
		log.Println("Warning: CRON_TRIGGER_SECRET not set. Trigger endpoints will reject all callers.")
	}

	cfg.TriggerRateLimit = viper.GetString("TRIGGER_RATE_LIMIT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	return cfg, nil
}
