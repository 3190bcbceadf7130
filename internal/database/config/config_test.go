package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT", "DB_SSLMODE", "DB_TIMEZONE"} {
			t.Setenv(key, "")
		}

		cfg := LoadConfigFromEnv()
		assert.Equal(t, Config{
			Host:     "localhost",
			User:     "postgres",
			Password: "postgres",
			DBName:   "hacksavvy",
			Port:     "5432",
			SSLMode:  "disable",
			TimeZone: "UTC",
		}, cfg)
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_USER", "app")
		t.Setenv("DB_PASSWORD", "s3cret")
		t.Setenv("DB_NAME", "hacksavvy_test")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_SSLMODE", "require")
		t.Setenv("DB_TIMEZONE", "Asia/Kolkata")

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, "app", cfg.User)
		assert.Equal(t, "hacksavvy_test", cfg.DBName)
		assert.Equal(t, "Asia/Kolkata", cfg.TimeZone)
	})
}

func TestBuildDSN(t *testing.T) {
	cfg := Config{
		Host: "localhost", User: "postgres", Password: "pw", DBName: "hacksavvy",
		Port: "5432", SSLMode: "disable", TimeZone: "UTC",
	}
	assert.Equal(t,
		"host=localhost user=postgres password=pw dbname=hacksavvy port=5432 sslmode=disable TimeZone=UTC",
		BuildDSN(cfg))
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/hacksavvy?sslmode=disable", BuildURL(cfg))
}

func TestSanitizeError(t *testing.T) {
	cfg := Config{Password: "hunter2"}

	assert.NoError(t, SanitizeError(nil, cfg))

	err := SanitizeError(errors.New("auth failed for password=hunter2"), cfg)
	assert.NotContains(t, err.Error(), "hunter2")
	assert.Contains(t, err.Error(), "password=***")
	assert.Contains(t, err.Error(), "failed to connect to database")
}

func TestLoadRetryConfigFromEnv(t *testing.T) {
	t.Setenv("DB_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("DB_RETRY_INITIAL_DELAY", "250ms")
	t.Setenv("DB_RETRY_MAX_DELAY", "")
	t.Setenv("DB_RETRY_MULTIPLIER", "1.5")

	cfg := LoadRetryConfigFromEnv()
	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.Equal(t, 1.5, cfg.Multiplier)
	assert.NotEmpty(t, cfg.RetryableErrors)
}

func TestLoadPoolConfigFromEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "10")
	t.Setenv("DB_MAX_IDLE_CONNS", "2")
	t.Setenv("DB_CONN_MAX_LIFETIME", "")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "")

	cfg := LoadPoolConfigFromEnv()
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, 2, cfg.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
}
