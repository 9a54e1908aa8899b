package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 600*time.Millisecond, cfg.TransitionDuration)
	assert.Equal(t, 50*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.LoadingDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.TimeUpdateInterval)
	assert.Equal(t, 50.0, cfg.SwipeThreshold)
	assert.Equal(t, 20, cfg.HistoryLimit)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SLIDEPLAY_TRANSITION_DURATION", "1s")
	t.Setenv("SLIDEPLAY_STORE_DRIVER", "sqlite")
	t.Setenv("SLIDEPLAY_LOG_LEVEL", "DEBUG")
	t.Setenv("SLIDEPLAY_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.TransitionDuration)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SLIDEPLAY_STORE_DRIVER", "postgres"},
		{"SLIDEPLAY_HISTORY_LIMIT", "0"},
		{"SLIDEPLAY_WORKERS", "abc"},
		{"SLIDEPLAY_SPEED", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestScaled(t *testing.T) {
	cfg := Config{Speed: 4}
	assert.Equal(t, 250*time.Millisecond, cfg.Scaled(time.Second))
}
