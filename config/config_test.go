package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_EMAIL", "admin@opsvix.test")
	t.Setenv("ADMIN_PASSWORD", "pw")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"PORT", "APP_ENV", "DATABASE_URL", "JWT_EXPIRES_IN", "FRONTEND_URL", "ASSET_FOLDER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.DefaultDatabase)
	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "http://localhost:3000", cfg.CORS.FrontendURL)
	assert.Equal(t, "opsvix", cfg.Storage.Folder)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("DATABASE_URL", "postgres://db/opsvix")
	t.Setenv("JWT_EXPIRES_IN", "12h")
	t.Setenv("ASSET_PUBLIC_BASE_URL", "https://cdn.opsvix.test/")
	t.Setenv("ASSET_FOLDER", "/media/")

	v := viper.New()
	v.Set("PORT", "8080")
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.DefaultDatabase)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "https://cdn.opsvix.test", cfg.Storage.PublicBaseURL)
	assert.Equal(t, "media", cfg.Storage.Folder)
}

func TestLoadRejectsIncompleteConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "pw")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET, ADMIN_EMAIL")

	setRequired(t)
	t.Setenv("JWT_EXPIRES_IN", "forever")
	_, err = Load(viper.New())
	assert.ErrorContains(t, err, "JWT_EXPIRES_IN")

	t.Setenv("JWT_EXPIRES_IN", "1d")
	t.Setenv("APP_ENV", "staging")
	_, err = Load(viper.New())
	assert.ErrorContains(t, err, "APP_ENV")
}

func TestLoadEnv(t *testing.T) {
	err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPSVIX_CONFIG_TEST=loaded\n"), 0o600))
	t.Setenv("OPSVIX_CONFIG_TEST", "")
	require.NoError(t, os.Unsetenv("OPSVIX_CONFIG_TEST"))
	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "loaded", os.Getenv("OPSVIX_CONFIG_TEST"))
}
