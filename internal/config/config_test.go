package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxMessageBytes)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestUpdateFromSkipsZeroValues(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":9000", LogLevel: "debug"})

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxMessageBytes)
}

func TestLoadReadsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9999\"\nlog_level: warn\n"), 0o600))

	cfg, resolved, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	// Unspecified keys keep defaults.
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadWritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	// The default file was materialized for next time.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
