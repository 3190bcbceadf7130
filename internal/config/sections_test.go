package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAuthConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_COOKIE_NAME", "")
	t.Setenv("AUTH_COOKIE_SECURE", "false")
	t.Setenv("AUTH_SESSION_TTL", "")
	t.Setenv("ADMIN_EMAILS", " Admin@Example.com , ops@example.com,,")

	cfg := LoadAuthConfigFromEnv()

	assert.Equal(t, "hs_session", cfg.CookieName)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"Admin@Example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.NoError(t, cfg.Validate())
}

func TestAuthConfig_Validate(t *testing.T) {
	valid := AuthConfig{JWTSecret: "0123456789abcdef0123456789abcdef", CookieName: "hs_session", SessionTTL: time.Hour}
	assert.NoError(t, valid.Validate())

	short := valid
	short.JWTSecret = "secret"
	assert.ErrorContains(t, short.Validate(), "AUTH_JWT_SECRET")

	noCookie := valid
	noCookie.CookieName = ""
	assert.ErrorContains(t, noCookie.Validate(), "AUTH_COOKIE_NAME")

	noTTL := valid
	noTTL.SessionTTL = 0
	assert.ErrorContains(t, noTTL.Validate(), "AUTH_SESSION_TTL")
}

func TestMailConfig(t *testing.T) {
	t.Run("no relay logs only", func(t *testing.T) {
		cfg := MailConfig{From: "no-reply@example.com", MaxAttempts: 3}
		assert.False(t, cfg.Enabled())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("relay requires port and timeout", func(t *testing.T) {
		cfg := MailConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com", MaxAttempts: 3, Timeout: time.Second}
		assert.True(t, cfg.Enabled())
		assert.NoError(t, cfg.Validate())

		cfg.Port = 70000
		assert.ErrorContains(t, cfg.Validate(), "SMTP_PORT")

		cfg.Port = 587
		cfg.Timeout = 0
		assert.ErrorContains(t, cfg.Validate(), "MAIL_TIMEOUT")
	})

	t.Run("sender and attempts always required", func(t *testing.T) {
		assert.ErrorContains(t, MailConfig{MaxAttempts: 1}.Validate(), "MAIL_FROM")
		assert.ErrorContains(t, MailConfig{From: "a@example.com"}.Validate(), "MAIL_RETRY_MAX_ATTEMPTS")
	})
}

func TestStorageConfig(t *testing.T) {
	t.Setenv("STORAGE_ROOT", "")
	t.Setenv("STORAGE_PUBLIC_BASE_URL", "")
	t.Setenv("STORAGE_MAX_PROOF_SIZE", "")

	cfg := LoadStorageConfigFromEnv()
	assert.Equal(t, "uploads", cfg.Root)
	assert.Equal(t, "/uploads", cfg.PublicBaseURL)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxProofSize)
	assert.NoError(t, cfg.Validate())

	assert.ErrorContains(t, StorageConfig{MaxProofSize: 1}.Validate(), "STORAGE_ROOT")
	assert.ErrorContains(t, StorageConfig{Root: "uploads"}.Validate(), "STORAGE_MAX_PROOF_SIZE")
}
