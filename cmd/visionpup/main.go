package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmbarzee/visionpup/internal/ble"
	"github.com/jmbarzee/visionpup/internal/bridge"
	"github.com/jmbarzee/visionpup/internal/config"
	"github.com/jmbarzee/visionpup/internal/dispatch"
	"github.com/jmbarzee/visionpup/internal/vision"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "path to config file (default: ~/.config/visionpup/config.yaml)")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	printBanner(cfg)

	// Initialize BLE adapter
	adapter := ble.NewTinygoAdapter()
	if err := adapter.Enable(); err != nil {
		log.Fatalf("Failed to enable BLE adapter: %v\n\nEnsure Bluetooth is powered on.", err)
	}
	log.Println("BLE adapter ready")

	// Initialize vision sensor
	classifier, err := vision.OpenSerial(cfg.Vision.Port, cfg.Vision.Baud)
	if err != nil {
		log.Fatalf("Failed to open vision sensor: %v\n\nCheck that the sensor is connected at %s.", err, cfg.Vision.Port)
	}
	log.Println("Vision sensor ready")

	b := bridge.New(bridge.Options{
		TargetName:     cfg.Peripheral.Name,
		ScanDuration:   time.Duration(cfg.Peripheral.ScanSeconds) * time.Second,
		ConnectTimeout: time.Duration(cfg.Peripheral.ConnectTimeoutSeconds) * time.Second,
		ScoreThreshold: cfg.Vision.ScoreThreshold,
	}, adapter, classifier, dispatch.DefaultTable())

	// Signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Ready! Searching for %q. Ctrl+C to quit.", cfg.Peripheral.Name)

	if err := b.Run(ctx); err != nil {
		log.Fatalf("bridge: %v", err)
	}
	log.Println("Goodbye!")
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	// Try default config path
	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Printf("Config loaded from %s", defaultPath)
		return cfg, nil
	}

	// No config file, use defaults
	log.Println("No config file found, using defaults")
	return config.Default(), nil
}

// printBanner displays the startup configuration summary.
func printBanner(cfg *config.Config) {
	fmt.Println("=== visionpup ===")
	fmt.Printf("  Robot:   %s (scan %ds, connect timeout %ds)\n",
		cfg.Peripheral.Name, cfg.Peripheral.ScanSeconds, cfg.Peripheral.ConnectTimeoutSeconds)
	fmt.Printf("  Vision:  %s @ %d baud, threshold %d\n",
		cfg.Vision.Port, cfg.Vision.Baud, cfg.Vision.ScoreThreshold)
	fmt.Printf("  Log:     %s\n", cfg.LogLevel)
	fmt.Println("=================")
}
