/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/

// Package config holds the YAML configuration for the kvdb CLI and
// server layer: listen port, API key, log file path, logging level.
// This is strictly an ambient concern of the command-line front end;
// the core engine (pkg/store) has no configuration surface of its own,
// no CLI, no environment variables, and no persisted auxiliary state.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the kvdb server's persisted configuration.
type Config struct {
	Path    string  `yaml:"path"`
	Port    int     `yaml:"port"`
	Bind    string  `yaml:"bind"`
	APIKey  string  `yaml:"api_key"`
	Logging Logging `yaml:"logging"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Path: "./kvdb.db",
		Port: 8080,
		Bind: "127.0.0.1",
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

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

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions.
func SaveConfig(config *Config, configPath string) error {
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

// GenerateAPIKey generates a cryptographically secure random API key,
// used by BootstrapConfig and available to callers that need to mint
// one on their own (e.g. a first-run CLI prompt).
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// BootstrapConfig creates a new configuration with a generated API key
// and saves it to configPath.
func BootstrapConfig(configPath, dbPath string) (*Config, error) {
	cfg := DefaultConfig()
	if dbPath != "" {
		cfg.Path = dbPath
	}

	apiKey, err := GenerateAPIKey()
	if err != nil {
		return nil, err
	}
	cfg.APIKey = apiKey

	if err := SaveConfig(cfg, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return cfg, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./kvdb.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "kvdb")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
