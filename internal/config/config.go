// Package config holds slideplay settings. Values come from SLIDEPLAY_* environment
// variables and are then overridden by command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// player timings
	TransitionDuration time.Duration `env:"TRANSITION_DURATION" envDefault:"600ms"`
	SettleDelay        time.Duration `env:"SETTLE_DELAY" envDefault:"50ms"`
	LoadingDelay       time.Duration `env:"LOADING_DELAY" envDefault:"100ms"`
	TimeUpdateInterval time.Duration `env:"TIME_UPDATE_INTERVAL" envDefault:"250ms"`
	SwipeThreshold     float64       `env:"SWIPE_THRESHOLD" envDefault:"50"`
	// Speed scales simulated playback in headless mode; 2 plays twice as fast.
	Speed float64 `env:"SPEED" envDefault:"1"`

	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"20"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"file"`
	StorePath   string `env:"STORE_PATH" envDefault:"scenarios"`
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`

	// deck import
	DPI       int    `env:"DPI" envDefault:"150"`
	Workers   int    `env:"WORKERS" envDefault:"4"`
	MaxWidth  int    `env:"MAX_WIDTH" envDefault:"1920"`
	AssetsDir string `env:"ASSETS_DIR" envDefault:"assets"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ShowStats    bool   `env:"SHOW_STATS"`
	BuildVersion string
}

// Load parses the environment into a Config with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SLIDEPLAY_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	switch {
	case c.TransitionDuration < 0 || c.SettleDelay < 0 || c.LoadingDelay < 0:
		return fmt.Errorf("config: negative player timing")
	case c.TimeUpdateInterval <= 0:
		return fmt.Errorf("config: time update interval must be positive")
	case c.HistoryLimit <= 0:
		return fmt.Errorf("config: history limit must be positive, got %d", c.HistoryLimit)
	case c.Workers <= 0:
		return fmt.Errorf("config: workers must be positive, got %d", c.Workers)
	case c.Speed <= 0:
		return fmt.Errorf("config: speed must be positive, got %v", c.Speed)
	}
	switch c.StoreDriver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("config: unknown store driver %q", c.StoreDriver)
	}
	return nil
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Scaled divides d by Speed, for running simulated playback faster than real time.
func (c Config) Scaled(d time.Duration) time.Duration {
	if c.Speed <= 0 {
		return d
	}
	return time.Duration(float64(d) / c.Speed)
}
