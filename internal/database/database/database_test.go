package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/database/config"
	"github.com/festy23/hacksavvy/internal/database/pool"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestNewWithConfig_Unreachable(t *testing.T) {
	t.Setenv("DB_RETRY_MAX_ATTEMPTS", "1")
	t.Setenv("DB_CONNECT_TIMEOUT", "2s")

	db, err := NewWithConfig(config.Config{
		Host:     "127.0.0.1",
		User:     "postgres",
		Password: "topsecret",
		DBName:   "hacksavvy",
		Port:     "1",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}, pool.DefaultPoolConfig(), zap.NewNop().Sugar())

	assert.Nil(t, db)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "topsecret")
}

func TestHealthCheck(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	t.Run("nil connection", func(t *testing.T) {
		assert.Error(t, HealthCheck(ctx, nil))
	})

	t.Run("open connection", func(t *testing.T) {
		db := openSQLite(t)
		defer Close(db)
		assert.NoError(t, HealthCheck(ctx, db))
	})

	t.Run("closed connection", func(t *testing.T) {
		db := openSQLite(t)
		require.NoError(t, Close(db))
		err := HealthCheck(ctx, db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database ping failed")
	})
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(nil))
	assert.NoError(t, Close(openSQLite(t)))
}

func TestGetStats(t *testing.T) {
	_, err := GetStats(nil)
	assert.Error(t, err)

	db := openSQLite(t)
	defer Close(db)
	require.NoError(t, pool.SetupConnectionPool(db, pool.Config{MaxOpenConns: 3, MaxIdleConns: 1}))

	stats, err := GetStats(db)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.MaxOpenConnections)
}
