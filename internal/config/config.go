// FILE: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel    string        `yaml:"log-level" env:"HEXREF_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	TurnTimeout time.Duration `yaml:"turn-timeout" env:"HEXREF_TURN_TIMEOUT" env-default:"10s" validate:"min=0"`
	QuitGrace   time.Duration `yaml:"quit-grace" env:"HEXREF_QUIT_GRACE" env-default:"1s" validate:"min=0"`
	HTTPAddr    string        `yaml:"http-addr" env:"HEXREF_HTTP_ADDR" validate:"omitempty,hostname_port"`
	HistoryFile string        `yaml:"history-file" env:"HEXREF_HISTORY_FILE" env-default:".hexref_history"`
	Color       string        `yaml:"color" env:"HEXREF_COLOR" env-default:"auto" validate:"oneof=auto always never"`
}

var validate = validator.New()

// Load reads the YAML file at path, or only the environment when path is
// empty, then validates the result
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Level maps LogLevel to zerolog
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Usage describes the environment variables
func Usage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return text
}
