package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Viper ignora variables vacías: aplican los valores por defecto.
	for _, key := range []string{"APP_ENV", "STORAGE_DRIVER", "HTTP_PORT", "LOG_LEVEL", "DB_HOST"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 25, cfg.DB.MaxConns)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("DB_MAX_CONNS", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword")
	assert.Equal(t, 7, cfg.DB.MaxConns)
}

func TestDBConfig_ConnectionStringPrefiereURL(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgres://x@db/y", Host: "localhost", Port: 5432}
	assert.Equal(t, "postgres://x@db/y", c.ConnectionString())

	c.DatabaseURL = ""
	assert.Contains(t, c.ConnectionString(), "localhost:5432")
}

func TestHTTPConfig_Addr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", HTTPConfig{Host: "0.0.0.0", Port: 8080}.Addr())
}
