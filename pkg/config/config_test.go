package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.Redis.StatsTTLSeconds)
	assert.Equal(t, 5, cfg.Worker.Concurrency)
	assert.Equal(t, 200, cfg.Worker.ReconcileBatch)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "stockline", SSLMode: "disable"}
	dsn := db.ConnectionString()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db:5432")
	assert.NotContains(t, dsn, "p@ss/word", "la contraseña debe ir URL-encoded")

	db.DatabaseURL = "postgresql://x:y@host/db"
	assert.Equal(t, "postgresql://x:y@host/db", db.ConnectionString())
}
