package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/palletpro-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("DATA_SOURCE", "mock")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DataSourceMock, cfg.App.DataSource)
	assert.Equal(t, 10, cfg.Table.DefaultPerPage)
	assert.Equal(t, 1000, cfg.Table.AdvisoryThreshold)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("MOCK_LATENCY", "50")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TABLE_PER_PAGE", "25")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DataSourcePostgres, cfg.App.DataSource)
	assert.Equal(t, 50*time.Millisecond, cfg.App.MockLatency)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 25, cfg.Table.DefaultPerPage)
	assert.False(t, cfg.Telemetry.Insecure)
}

func TestLoad_OrigenInvalido(t *testing.T) {
	t.Setenv("DATA_SOURCE", "mysql")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "palletpro", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/palletpro?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
