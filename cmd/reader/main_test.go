package main

import (
	"context"
	"testing"
	"time"

	"barcodereader/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()
	var got *config.Config
	app := newCLI(func(ctx context.Context, cfg *config.Config) error {
		require.NotNil(t, ctx)
		got = cfg
		return nil
	})
	require.NoError(t, app.Run(append([]string{"barcode-reader"}, args...)))
	require.NotNil(t, got)
	return got
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("CAMERA_INDEX", "4")
	t.Setenv("COOLDOWN", "5s")
	t.Setenv("SEEN_STORE", "memory")

	cfg := captureConfig(t,
		"--camera", "1",
		"--cooldown", "750ms",
		"--seen-store", "sqlite",
		"--symbologies", "qrcode, ean13",
		"--symbologies", "code128",
		"--headless",
	)

	assert.Equal(t, 1, cfg.CameraIndex)
	assert.Equal(t, 750*time.Millisecond, cfg.Cooldown)
	assert.Equal(t, config.SeenStoreSQLite, cfg.SeenStore)
	assert.Equal(t, []string{"QRCODE", "EAN13", "CODE128"}, cfg.Symbologies)
	assert.True(t, cfg.Headless)
}

func TestUnsetFlagsKeepEnvironment(t *testing.T) {
	t.Setenv("CAMERA_INDEX", "2")
	t.Setenv("PROBE_LIMIT", "3")
	t.Setenv("REPLAY_DIR", "/tmp/frames")

	cfg := captureConfig(t)

	assert.Equal(t, 2, cfg.CameraIndex)
	assert.Equal(t, 3, cfg.ProbeLimit)
	assert.Equal(t, "/tmp/frames", cfg.ReplayDirectory)
	assert.False(t, cfg.Headless)
}
