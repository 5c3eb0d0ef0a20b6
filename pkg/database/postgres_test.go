package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig_AppliesDefaults(t *testing.T) {
	cfg, err := poolConfig("postgres://insight:pw@localhost:5432/insight_engine", 0)
	require.NoError(t, err)

	assert.Equal(t, int32(defaultMaxConns), cfg.MaxConns)
	assert.Equal(t, time.Hour, cfg.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.MaxConnIdleTime)
}

func TestPoolConfig_ExplicitLimit(t *testing.T) {
	cfg, err := poolConfig("postgres://insight:pw@localhost:5432/insight_engine", 5)
	require.NoError(t, err)
	assert.Equal(t, int32(5), cfg.MaxConns)
}

func TestPoolConfig_KeywordConnString(t *testing.T) {
	cfg, err := poolConfig("host=localhost port=5432 user=insight dbname=insight_engine sslmode=disable", 0)
	require.NoError(t, err)
	assert.Equal(t, "insight_engine", cfg.ConnConfig.Database)
}

func TestPoolConfig_BadConnString(t *testing.T) {
	_, err := poolConfig("postgres://insight:pw@localhost:not-a-port/db", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse connection string")
}
