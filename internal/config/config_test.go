package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "blog", cfg.Database.Database)
	assert.Equal(t, 15, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 72, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, "blog", cfg.MinIO.Bucket)
	assert.False(t, cfg.MinIO.UseSSL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "50")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 50, cfg.Database.MaxConns)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestLoad_IgnoresInvalidInts(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidate_ProductionRequiresRealSecret(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "production"},
		JWT: JWTConfig{Secret: "your-secret-key-change-in-production"},
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "an-actual-secret"
	cfg.Database.Password = "pw"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ProductionRequiresDBPassword(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "production"},
		JWT:      JWTConfig{Secret: "an-actual-secret"},
		Database: DatabaseConfig{Password: ""},
	}
	assert.Error(t, cfg.Validate())
}

func TestValidate_DevelopmentAllowsDefaults(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "development"}}
	assert.NoError(t, cfg.Validate())
}
