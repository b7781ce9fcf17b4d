package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL      string        `mapstructure:"EROS_API_URL"`
	RequestTimeout  time.Duration `mapstructure:"EROS_REQUEST_TIMEOUT"`
	StorageDir      string        `mapstructure:"EROS_STORAGE_DIR"`
	LogLevel        string        `mapstructure:"EROS_LOG_LEVEL"`
	CardAuthDelay   time.Duration `mapstructure:"EROS_CARD_AUTH_DELAY"`
	PixConfirmDelay time.Duration `mapstructure:"EROS_PIX_CONFIRM_DELAY"`
	ConsultationFee float64       `mapstructure:"EROS_CONSULTATION_FEE"`
	RateLimitRPS    float64       `mapstructure:"EROS_RATE_LIMIT_RPS"`
	RateLimitBurst  int           `mapstructure:"EROS_RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("EROS_API_URL", "http://localhost:8080/api")
	v.SetDefault("EROS_REQUEST_TIMEOUT", 10*time.Second)
	v.SetDefault("EROS_STORAGE_DIR", ".eros")
	v.SetDefault("EROS_LOG_LEVEL", "info")
	v.SetDefault("EROS_CARD_AUTH_DELAY", 2*time.Second)
	v.SetDefault("EROS_PIX_CONFIRM_DELAY", 1500*time.Millisecond)
	v.SetDefault("EROS_CONSULTATION_FEE", 150.0)
	v.SetDefault("EROS_RATE_LIMIT_RPS", 0)
	v.SetDefault("EROS_RATE_LIMIT_BURST", 0)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("EROS_API_URL")
	v.BindEnv("EROS_REQUEST_TIMEOUT")
	v.BindEnv("EROS_STORAGE_DIR")
	v.BindEnv("EROS_LOG_LEVEL")
	v.BindEnv("EROS_CARD_AUTH_DELAY")
	v.BindEnv("EROS_PIX_CONFIRM_DELAY")
	v.BindEnv("EROS_CONSULTATION_FEE")
	v.BindEnv("EROS_RATE_LIMIT_RPS")
	v.BindEnv("EROS_RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable before any component is
// built from it.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("EROS_API_URL is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("EROS_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.ConsultationFee < 0 {
		return fmt.Errorf("EROS_CONSULTATION_FEE must not be negative, got %v", c.ConsultationFee)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit settings must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst == 0 {
		return fmt.Errorf("EROS_RATE_LIMIT_BURST is required when EROS_RATE_LIMIT_RPS is set")
	}
	return nil
}
