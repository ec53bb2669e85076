package inits

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Config(dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	assert.Equal(t, "http://localhost:1323", cfg.ServerEndpoint)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.WatchInterval)
	assert.Equal(t, filepath.Join(dir, "prefs.yaml"), cfg.PrefsFile)
	assert.Empty(t, cfg.SystemInstruction)
	assert.False(t, cfg.Debug)
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"server: https://sn-shinkwang.org\nwatch_interval: 10s\nprefs_file: /tmp/sgch-prefs.yaml\n"), 0o644))
	t.Setenv("SGCH_DEBUG", "true")
	t.Setenv("SGCH_TIMEOUT", "5s")

	cfg, err := Config(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://sn-shinkwang.org", cfg.ServerEndpoint)
	assert.Equal(t, 10*time.Second, cfg.WatchInterval)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/sgch-prefs.yaml", cfg.PrefsFile)
	assert.True(t, cfg.Debug)
}

func TestConfigRejectsBadServer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: localhost\n"), 0o644))

	_, err := Config(dir)
	assert.Error(t, err)
}
