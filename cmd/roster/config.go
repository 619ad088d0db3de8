package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// configEnv names the environment variable consulted when --config is unset.
const configEnv = "ROSTER_CONFIG"

// Config holds defaults read from a YAML file. Explicit flags win.
type Config struct {
	Filename string `yaml:"filename"`
	Output   string `yaml:"output" validate:"omitempty,oneof=tty csv json xml yaml"`
	Color    string `yaml:"color" validate:"omitempty,oneof=auto always never"`
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

var configValidate = validator.New()

// loadConfig reads the config file at path. An empty path yields the zero
// Config.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file %q does not exist", path)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := configValidate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// level returns the configured log level, defaulting to info.
func (c Config) level() slog.Level {
	var l slog.Level
	if c.LogLevel == "" || l.UnmarshalText([]byte(c.LogLevel)) != nil {
		return slog.LevelInfo
	}
	return l
}
