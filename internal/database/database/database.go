// Package database provides database connection management for PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/hacksavvy/internal/database/config"
	"github.com/festy23/hacksavvy/internal/database/pool"
	"github.com/festy23/hacksavvy/pkg/retry"
)

// New creates a new database connection using environment variables.
func New(logger *zap.SugaredLogger) (*gorm.DB, error) {
	return NewWithConfig(config.LoadConfigFromEnv(), config.LoadPoolConfigFromEnv(), logger)
}

// NewWithConfig opens a PostgreSQL connection, retrying transient failures
// while the database is starting up.
func NewWithConfig(cfg config.Config, poolCfg pool.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	retryCfg := config.LoadRetryConfigFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout())
	defer cancel()

	dsn := config.BuildDSN(cfg)
	attempt := 0

	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		attempt++
		conn, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if openErr != nil {
			logger.Warnw("database connection attempt failed",
				"attempt", attempt,
				"host", cfg.Host,
				"error", config.SanitizeError(openErr, cfg),
			)
			return nil, openErr
		}
		return conn, nil
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, poolCfg); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("database connected", "host", cfg.Host, "dbname", cfg.DBName, "attempts", attempt)
	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
