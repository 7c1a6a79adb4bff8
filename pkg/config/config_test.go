package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("DB_TX_ISOLATION", "")
	t.Setenv("LEDGER_CONFLICT_RETRY_BACKOFF_MS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "serializable", cfg.DB.TxIsolation)
	assert.Equal(t, 50*time.Millisecond, cfg.Ledger.ConflictRetryBackoff)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("DB_TX_ISOLATION", "READ_COMMITTED")
	t.Setenv("LEDGER_CONFLICT_RETRY_BACKOFF_MS", "120")
	t.Setenv("REPORT_ORG", "Municipalidad")
	t.Setenv("DB_MIGRATE_ON_START", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "read_committed", cfg.DB.TxIsolation)
	assert.Equal(t, 120*time.Millisecond, cfg.Ledger.ConflictRetryBackoff)
	assert.Equal(t, "Municipalidad", cfg.Report.Org)
	assert.True(t, cfg.DB.MigrateOnStart)
}

func TestLoad_AislamientoInvalido(t *testing.T) {
	t.Setenv("DB_TX_ISOLATION", "snapshot")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/inv?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
