package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
	assert.Equal(t, "auto", cfg.Storage.Region)
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".roastery", "roastery.db"), cfg.DBPath)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ROASTERY_DB", ":memory:")
	t.Setenv("ROASTERY_ALLOWED_ORIGINS", "http://localhost:3000,https://shop.example.com")
	t.Setenv("ROASTERY_LOG_FORMAT", "json")
	t.Setenv("ROASTERY_S3_BUCKET", "images")
	t.Setenv("ROASTERY_S3_ACCESS_KEY", "a")
	t.Setenv("ROASTERY_S3_SECRET_KEY", "s")
	t.Setenv("ROASTERY_S3_ENDPOINT", "https://r2.example.com")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, []string{"http://localhost:3000", "https://shop.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Storage.Enabled())
	assert.Equal(t, "https://r2.example.com", cfg.Storage.Endpoint)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("ROASTERY_HTTP_ADDR=:9999\nROASTERY_DB=/tmp/x.db\n"), 0o644))
	t.Setenv("ROASTERY_DB", "/override.db")
	t.Cleanup(func() { os.Unsetenv("ROASTERY_HTTP_ADDR") })

	n, err := LoadEnv([]string{file, filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "/override.db", cfg.DBPath)
}

func TestValidate(t *testing.T) {
	cfg := Config{DBPath: "x.db", LogLevel: "loud", LogFormat: "xml", MaxUploadBytes: 1}
	cfg.Storage.Bucket = "images"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROASTERY_LOG_LEVEL")
	assert.Contains(t, err.Error(), "ROASTERY_LOG_FORMAT")
	assert.Contains(t, err.Error(), "must be set together")
}

func TestNewLogger(t *testing.T) {
	log := NewLogger(&Config{LogLevel: "debug", LogFormat: "json"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}
