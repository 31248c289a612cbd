// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration: locating, reading and
// writing the YAML config file and filling in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTool           = "nmcli"
	DefaultCommandTimeout = 30 * time.Second
	DefaultSSIDWidth      = 25
	DefaultLogLevel       = "info"

	minSSIDWidth = 4
)

// Config represents the top-level application configuration
type Config struct {
	// Tool is the network-management executable to invoke
	Tool string `yaml:"tool,omitempty"`

	// Interface restricts every operation to one wireless device (optional)
	Interface string `yaml:"interface,omitempty"`

	// CommandTimeout bounds each invocation of Tool
	CommandTimeout time.Duration `yaml:"command_timeout,omitempty"`

	// SSIDWidth is the number of terminal cells the SSID column may use
	SSIDWidth int `yaml:"ssid_width,omitempty"`

	// NerdFont switches signal bars to Nerd Font glyphs
	NerdFont bool `yaml:"nerd_font,omitempty"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Tool:           DefaultTool,
		CommandTimeout: DefaultCommandTimeout,
		SSIDWidth:      DefaultSSIDWidth,
		LogLevel:       DefaultLogLevel,
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Tool == "" {
		c.Tool = d.Tool
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = d.CommandTimeout
	}
	if c.SSIDWidth == 0 {
		c.SSIDWidth = d.SSIDWidth
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.SSIDWidth < minSSIDWidth {
		return fmt.Errorf("ssid_width must be at least %d, got %d", minSSIDWidth, c.SSIDWidth)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "wifi-manager", "config.yaml"), nil
}

// LoadConfig reads the config from the default location.
func LoadConfig() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom reads the config at configPath. A missing file yields the
// defaults.
func LoadConfigFrom(configPath string) (Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return cfg, nil
}

func EnsureConfigDir() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	err = os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

// SaveConfig writes cfg to the default location.
func SaveConfig(cfg Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(configPath, cfg)
}

// SaveConfigTo writes cfg to configPath, creating its directory.
func SaveConfigTo(configPath string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write with permissions rw-r----- (0640)
	err = os.WriteFile(configPath, data, 0640)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}
