package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDBPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "testpass")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "rolodex", cfg.Database.Name)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Empty(t, cfg.Geo.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Geo.Timeout)
	assert.Empty(t, cfg.Email.FromAddress)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("PORT", "9000")
	t.Setenv("GEO_API_KEY", "abc123")
	t.Setenv("DB_MAX_CONN_LIFETIME", "10m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "abc123", cfg.Geo.APIKey)
	assert.Equal(t, 10*time.Minute, cfg.Database.MaxConnLifetime)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		Name:     "rolodex",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=rolodex sslmode=disable",
		cfg.DSN(),
	)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
}
