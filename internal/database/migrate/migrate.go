// Package migrate applies the SQL schema migrations with golang-migrate.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/database/config"
)

// GetMigrationsPath returns the migrations directory, overridable by MIGRATIONS_PATH.
func GetMigrationsPath() string {
	return config.GetEnv("MIGRATIONS_PATH", "migrations")
}

// ResolvePath converts dir into an absolute path and checks that it exists.
func ResolvePath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for migrations: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("migrations directory does not exist: %s", abs)
		}
		return "", fmt.Errorf("failed to stat migrations directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("migrations path is not a directory: %s", abs)
	}
	return abs, nil
}

// Migrate applies every pending up migration found in dir.
func Migrate(db *gorm.DB, dir string, logger *zap.SugaredLogger) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	migrationsPath, err := ResolvePath(dir)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Infow("database schema is up to date", "path", migrationsPath)
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Infow("database migrations applied", "version", version, "dirty", dirty)
	return nil
}
