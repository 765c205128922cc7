package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, "jwt:\n  secret: s3cret\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 168*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 120*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 10, cfg.Generation.MaxModules)
	assert.Equal(t, "/api/generate-roadmap", cfg.Generation.RoadmapPath)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: \"9000\"\n")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigRejectsShortSecretInRelease(t *testing.T) {
	dir := writeConfig(t, "server:\n  mode: release\njwt:\n  secret: short\n")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := writeConfig(t, "jwt:\n  secret: from-file\ngeneration:\n  max_modules: 50\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("GENERATION_BASE_URL", "http://gen.internal:9000")
	t.Setenv("PORT", "8081")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "http://gen.internal:9000", cfg.Generation.BaseURL)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Generation.MaxModules, "limits above 10 are clamped")
}
