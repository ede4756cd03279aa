package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Engine.AllowEmptyDocuments)
	assert.False(t, cfg.Engine.StrictOrderLink)
	assert.Equal(t, "last", cfg.Engine.CostPolicy)
	assert.Equal(t, 100, cfg.Engine.MovementHistoryLimit)
	assert.Equal(t, 30, cfg.Engine.DefaultDueDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ENGINE_ALLOW_EMPTY_DOCUMENTS", "false")
	t.Setenv("ENGINE_STRICT_ORDER_LINK", "true")
	t.Setenv("ENGINE_COST_POLICY", "average")
	t.Setenv("ENGINE_MOVEMENT_HISTORY_LIMIT", "25")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.False(t, cfg.Engine.AllowEmptyDocuments)
	assert.True(t, cfg.Engine.StrictOrderLink)
	assert.Equal(t, "average", cfg.Engine.CostPolicy)
	assert.Equal(t, 25, cfg.Engine.MovementHistoryLimit)
}

func TestLoad_InvalidCostPolicy(t *testing.T) {
	t.Setenv("ENGINE_COST_POLICY", "fifo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "comercial", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/comercial?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
