package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "yummyai", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.AI.BaseURL)
	assert.Equal(t, "mistralai/devstral-2512:free", cfg.AI.Model)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 0.0001)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("server:\n  port: 9090\nai:\n  temperature: 0.3\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 0.3, cfg.AI.Temperature, 0.0001)
	// Unset keys keep their defaults.
	assert.Equal(t, "yummyai", cfg.App.Name)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("YUMMYAI_SERVER_PORT", "7070")
	t.Setenv("YUMMYAI_AI_API_KEY", "from-env")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.AI.APIKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	content := []byte("ai:\n  temperature: 9.0\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	dir := t.TempDir()
	content := []byte("app:\n  environment: production\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, Database: "yummyai",
		Username: "app", Password: "pw", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=yummyai sslmode=disable", d.DSN())
}
