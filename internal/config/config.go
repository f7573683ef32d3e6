package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the flat service configuration, read from the environment
// with defaults suitable for local runs.
type Config struct {
	HTTPPort        string        `mapstructure:"HTTP_PORT"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	WhatsAppNumber  string        `mapstructure:"WHATSAPP_NUMBER"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	// Destination for the order summary handoff, fixed configuration,
	// never user input
	v.SetDefault("WHATSAPP_NUMBER", "5511999999999")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
