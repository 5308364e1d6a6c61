package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Ledger.SequenceRetries)
	assert.Equal(t, "Africa/Dar_es_Salaam", cfg.App.Timezone)
	assert.Equal(t, 15*time.Second, cfg.Outbox.RelayInterval)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LEDGER_SEQUENCE_RETRIES", "7")
	t.Setenv("OUTBOX_RELAY_INTERVAL", "2s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 7, cfg.Ledger.SequenceRetries)
	assert.Equal(t, 2*time.Second, cfg.Outbox.RelayInterval)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mysql")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_WebhookSinURL(t *testing.T) {
	t.Setenv("PUSH_DRIVER", "webhook")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/ledger?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestAppConfig_LocationInvalidaCaeEnUTC(t *testing.T) {
	assert.Equal(t, time.UTC, config.AppConfig{Timezone: "Nowhere/Atlantis"}.Location())
}
