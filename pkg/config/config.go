/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the botsedit configuration
type Config struct {
	StashDir      string  `yaml:"stash_dir" validate:"required"`
	Backup        bool    `yaml:"backup"`
	DefaultFormat string  `yaml:"default_format" validate:"omitempty,oneof=item shop1 shop2"`
	Logging       Logging `yaml:"logging"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		StashDir: defaultStashDir(),
		Backup:   true,
		Logging: Logging{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from the specified path. Values missing
// from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadOrDefault loads configPath, falling back to defaults when the file
// does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	if !ConfigExists(configPath) {
		return DefaultConfig(), nil
	}
	return LoadConfig(configPath)
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var validate = validator.New()

// Validate checks the configuration values
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, e.Param(), e.Value()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./botsedit.yaml"
	}

	// For Linux/macOS, use ~/.config/botsedit/config.yaml
	return filepath.Join(homeDir, ".config", "botsedit", "config.yaml")
}

func defaultStashDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "botsedit", "stash")
	}
	return "./.botsedit"
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
