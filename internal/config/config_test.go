package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("listen_addr: \":8080\"\nenvironment: production\njwt_secret: super-secret\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.True(t, cfg.IsProduction())
}

func TestValidate_DevFallsBackToBuiltInSecret(t *testing.T) {
	cfg := &Config{Environment: "development", DatabaseURL: "test.db"}
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Environment: "production", DatabaseURL: "test.db"}
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "super-secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RequiresDatabaseURL(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.Error(t, cfg.Validate())
}
