package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"census/internal/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("DATA_PATH", "")
	t.Setenv("DATA_ROOT", "")
	t.Setenv("TRANSITION_MS", "")
	t.Setenv("RESIZE_DEBOUNCE_MS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	opts := cfg.ChartOptions()
	assert.Equal(t, chart.VariantDual, opts.Variant)
	assert.Equal(t, time.Second, opts.TransitionDuration)
	assert.Equal(t, 150*time.Millisecond, cfg.ResizeDebounce())
	assert.Equal(t, 30*time.Second, cfg.LoadTimeout())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "census.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "9000"
data_path = "assets/data/census.zip"
variant = "states"
transition_ms = 500
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("DATA_PATH", "")
	t.Setenv("DATA_ROOT", "")
	t.Setenv("TRANSITION_MS", "")
	t.Setenv("RESIZE_DEBOUNCE_MS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "assets/data/census.zip", cfg.DataPath)
	assert.Equal(t, "#scatter", cfg.Container)
	assert.Equal(t, chart.VariantStates, cfg.ChartOptions().Variant)
	assert.Equal(t, 500*time.Millisecond, cfg.ChartOptions().TransitionDuration)
	assert.Zero(t, cfg.ResizeDebounce())

	t.Setenv("PORT", "9100")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TRANSITION_MS", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TRANSITION_MS", "")
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`variant = "triple"`), 0o644))
	t.Setenv("CONFIG_FILE", path)
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	_, err = Load()
	assert.Error(t, err)
}
