// Package config provides database configuration management.
package config

import (
	"fmt"
	"strings"
	"time"

	appConfig "github.com/festy23/hacksavvy/internal/config"
	"github.com/festy23/hacksavvy/internal/database/pool"
	"github.com/festy23/hacksavvy/pkg/retry"
)

// Config holds database connection configuration.
type Config struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
}

// GetEnv reads an environment variable with a default fallback.
func GetEnv(key, defaultValue string) string {
	return appConfig.GetEnv(key, defaultValue)
}

// BuildDSN constructs PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// BuildURL constructs a postgres:// URL, the form golang-migrate and
// pgx tooling expect.
func BuildURL(cfg Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Host:     GetEnv("DB_HOST", "localhost"),
		User:     GetEnv("DB_USER", "postgres"),
		Password: GetEnv("DB_PASSWORD", "postgres"),
		DBName:   GetEnv("DB_NAME", "hacksavvy"),
		Port:     GetEnv("DB_PORT", "5432"),
		SSLMode:  GetEnv("DB_SSLMODE", "disable"),
		TimeZone: GetEnv("DB_TIMEZONE", "UTC"),
	}
}

// SanitizeError removes the password from connection error messages.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	errMsg := err.Error()
	if cfg.Password != "" {
		errMsg = strings.ReplaceAll(errMsg, cfg.Password, "***")
	}
	return fmt.Errorf("failed to connect to database: %s", errMsg)
}

// LoadRetryConfigFromEnv loads connection retry configuration from environment variables.
func LoadRetryConfigFromEnv() retry.Config {
	cfg := retry.PostgresConfig()
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	cfg.Multiplier = appConfig.GetEnvFloat("DB_RETRY_MULTIPLIER", cfg.Multiplier)
	return cfg
}

// LoadPoolConfigFromEnv loads connection pool limits from environment variables.
func LoadPoolConfigFromEnv() pool.Config {
	cfg := pool.DefaultPoolConfig()
	cfg.MaxOpenConns = appConfig.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.MaxIdleConns = appConfig.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns)
	cfg.ConnMaxLifetime = appConfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = appConfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime)
	return cfg
}

// ConnectTimeout bounds the whole retry loop of the initial connection.
func ConnectTimeout() time.Duration {
	return appConfig.GetEnvDuration("DB_CONNECT_TIMEOUT", 2*time.Minute)
}
