package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Database — path of the SQLite file backing the ledger.
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	// Redis — optional price-lookup cache. Empty disables caching.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Rate limiting
	RateLimitPerMinute int `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_PATH", "ventas.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 1000)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
