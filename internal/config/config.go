// Package config loads settings for the HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds server settings. Precedence is env > file > defaults.
type Config struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	Profile         string        `yaml:"profile" validate:"oneof=default strict"`
	Catalog         []string      `yaml:"catalog" validate:"dive,required"`
	LogLevel        string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat       string        `yaml:"log_format" validate:"oneof=json text"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" validate:"gt=0"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:            ":8080",
		Profile:         "default",
		LogLevel:        "info",
		LogFormat:       "json",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		MaxBodyBytes:    1 << 20,
	}
}

var validate = validator.New()

// Load reads path (optional) over the defaults, applies PCVERIFY_* environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	loadEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("PCVERIFY_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PCVERIFY_PROFILE"); v != "" {
		cfg.Profile = v
	}
	if v := os.Getenv("PCVERIFY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("PCVERIFY_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("PCVERIFY_CATALOG"); v != "" {
		var paths []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		cfg.Catalog = paths
	}
}

// Validate checks the struct tags and reports the first failing field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	e := validationErrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", e.Field())
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s], got %q", e.Field(), e.Param(), e.Value())
	default:
		return fmt.Errorf("%s: validation failed (%s)", e.Field(), e.Tag())
	}
}
