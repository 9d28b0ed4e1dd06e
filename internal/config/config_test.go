package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Peripheral.Name != "Bittle" {
		t.Errorf("Peripheral.Name = %q, want %q", cfg.Peripheral.Name, "Bittle")
	}
	if cfg.Peripheral.ScanSeconds != 5 {
		t.Errorf("Peripheral.ScanSeconds = %d, want 5", cfg.Peripheral.ScanSeconds)
	}
	if cfg.Peripheral.ConnectTimeoutSeconds != 10 {
		t.Errorf("Peripheral.ConnectTimeoutSeconds = %d, want 10", cfg.Peripheral.ConnectTimeoutSeconds)
	}
	if cfg.Vision.Port != "/dev/ttyUSB0" {
		t.Errorf("Vision.Port = %q, want %q", cfg.Vision.Port, "/dev/ttyUSB0")
	}
	if cfg.Vision.Baud != 921600 {
		t.Errorf("Vision.Baud = %d, want 921600", cfg.Vision.Baud)
	}
	if cfg.Vision.ScoreThreshold != 80 {
		t.Errorf("Vision.ScoreThreshold = %d, want 80", cfg.Vision.ScoreThreshold)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoad(t *testing.T) {
	yamlContent := `
peripheral:
  name: Pup42
  scan_seconds: 3
  connect_timeout_seconds: 7
vision:
  port: /dev/ttyACM1
  baud: 115200
  score_threshold: 60
log_level: debug
`
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Peripheral.Name != "Pup42" {
		t.Errorf("Peripheral.Name = %q, want %q", cfg.Peripheral.Name, "Pup42")
	}
	if cfg.Peripheral.ScanSeconds != 3 {
		t.Errorf("Peripheral.ScanSeconds = %d, want 3", cfg.Peripheral.ScanSeconds)
	}
	if cfg.Peripheral.ConnectTimeoutSeconds != 7 {
		t.Errorf("Peripheral.ConnectTimeoutSeconds = %d, want 7", cfg.Peripheral.ConnectTimeoutSeconds)
	}
	if cfg.Vision.Port != "/dev/ttyACM1" {
		t.Errorf("Vision.Port = %q, want %q", cfg.Vision.Port, "/dev/ttyACM1")
	}
	if cfg.Vision.Baud != 115200 {
		t.Errorf("Vision.Baud = %d, want 115200", cfg.Vision.Baud)
	}
	if cfg.Vision.ScoreThreshold != 60 {
		t.Errorf("Vision.ScoreThreshold = %d, want 60", cfg.Vision.ScoreThreshold)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	yamlContent := `
peripheral:
  name: OtherPup
`
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Peripheral.Name != "OtherPup" {
		t.Errorf("Peripheral.Name = %q, want %q", cfg.Peripheral.Name, "OtherPup")
	}
	if cfg.Vision.Baud != 921600 {
		t.Errorf("Vision.Baud = %d, want default 921600", cfg.Vision.Baud)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, "info")
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty peripheral name",
			modify:  func(c *Config) { c.Peripheral.Name = "" },
			wantErr: true,
		},
		{
			name:    "zero scan seconds",
			modify:  func(c *Config) { c.Peripheral.ScanSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "negative connect timeout",
			modify:  func(c *Config) { c.Peripheral.ConnectTimeoutSeconds = -1 },
			wantErr: true,
		},
		{
			name:    "empty vision port",
			modify:  func(c *Config) { c.Vision.Port = "" },
			wantErr: true,
		},
		{
			name:    "zero baud",
			modify:  func(c *Config) { c.Vision.Baud = 0 },
			wantErr: true,
		},
		{
			name:    "threshold too low",
			modify:  func(c *Config) { c.Vision.ScoreThreshold = 0 },
			wantErr: true,
		},
		{
			name:    "threshold too high",
			modify:  func(c *Config) { c.Vision.ScoreThreshold = 100 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // defaults to info
		{"", slog.LevelInfo},        // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
