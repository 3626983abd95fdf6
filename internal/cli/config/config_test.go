// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/grace/internal/cli/config"
)

func TestLoadDefaults(t *testing.T) {
	r := require.New(t)
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load("")
	r.NoError(err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, 1e-9, cfg.Geometry.Epsilon)
	assert.False(t, cfg.Check.FailFast)
	assert.True(t, cfg.Check.Color)
	assert.False(t, cfg.Check.Bundled)
}

func TestLoadWithConfigFile(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	content := `
log:
  level: debug
  development: true
geometry:
  epsilon: 0.001
check:
  fail_fast: true
  color: false
`
	r.NoError(os.WriteFile(filepath.Join(dir, "grace.yaml"), []byte(content), 0o644))

	cfg, err := config.Load("")
	r.NoError(err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, 0.001, cfg.Geometry.Epsilon)
	assert.True(t, cfg.Check.FailFast)
	assert.False(t, cfg.Check.Color)
}

func TestLoadExplicitFile(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	r.NoError(os.WriteFile(path, []byte("check:\n  bundled: true\n"), 0o644))

	cfg, err := config.Load(path)
	r.NoError(err)
	assert.True(t, cfg.Check.Bundled)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	r := require.New(t)
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GRACE_CHECK_FAIL_FAST", "true")
	t.Setenv("GRACE_LOG_LEVEL", "warn")

	cfg, err := config.Load("")
	r.NoError(err)
	assert.True(t, cfg.Check.FailFast)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		ok   bool
	}{
		{"valid", config.Config{Log: config.LogConfig{Level: "INFO"}, Geometry: config.GeometryConfig{Epsilon: 1e-9}}, true},
		{"unknown level", config.Config{Log: config.LogConfig{Level: "loud"}, Geometry: config.GeometryConfig{Epsilon: 1e-9}}, false},
		{"zero epsilon", config.Config{Log: config.LogConfig{Level: "info"}}, false},
		{"negative epsilon", config.Config{Log: config.LogConfig{Level: "info"}, Geometry: config.GeometryConfig{Epsilon: -1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLogger(t *testing.T) {
	r := require.New(t)
	cfg := config.Config{Log: config.LogConfig{Level: "debug", Development: true}, Geometry: config.GeometryConfig{Epsilon: 1e-9}}
	log, err := cfg.Logger()
	r.NoError(err)
	r.NotNil(log)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
