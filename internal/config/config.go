// Package config loads and validates the bridge configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Peripheral PeripheralConfig `yaml:"peripheral"`
	Vision     VisionConfig     `yaml:"vision"`
	LogLevel   string           `yaml:"log_level"`
}

// PeripheralConfig identifies the robot and bounds the BLE phases.
type PeripheralConfig struct {
	Name                  string `yaml:"name"`
	ScanSeconds           int    `yaml:"scan_seconds"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds"`
}

// VisionConfig describes the inference sensor's serial link.
type VisionConfig struct {
	Port           string `yaml:"port"`
	Baud           int    `yaml:"baud"`
	ScoreThreshold int    `yaml:"score_threshold"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "visionpup")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Peripheral: PeripheralConfig{
			Name:                  "Bittle",
			ScanSeconds:           5,
			ConnectTimeoutSeconds: 10,
		},
		Vision: VisionConfig{
			Port:           "/dev/ttyUSB0",
			Baud:           921600,
			ScoreThreshold: 80,
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.Peripheral.Name == "" {
		return fmt.Errorf("peripheral.name must not be empty")
	}

	if c.Peripheral.ScanSeconds <= 0 {
		return fmt.Errorf("peripheral.scan_seconds must be > 0")
	}

	if c.Peripheral.ConnectTimeoutSeconds <= 0 {
		return fmt.Errorf("peripheral.connect_timeout_seconds must be > 0")
	}

	if c.Vision.Port == "" {
		return fmt.Errorf("vision.port must not be empty")
	}

	if c.Vision.Baud <= 0 {
		return fmt.Errorf("vision.baud must be > 0")
	}

	if c.Vision.ScoreThreshold < 1 || c.Vision.ScoreThreshold > 99 {
		return fmt.Errorf("vision.score_threshold must be between 1 and 99, got %d", c.Vision.ScoreThreshold)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// ParseLogLevel maps a config log level string to a slog.Level. Unknown
// values default to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
