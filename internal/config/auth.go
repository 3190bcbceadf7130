package config

import (
	"fmt"
	"time"
)

// AuthConfig holds identity provider and session configuration.
type AuthConfig struct {
	// JWTSecret is the HMAC secret used by the identity provider to sign access tokens.
	JWTSecret string
	// Issuer is the expected "iss" claim. Empty disables the check.
	Issuer string
	// Audience is the expected "aud" claim. Empty disables the check.
	Audience string
	// CookieName is the session cookie holding the access token.
	CookieName string
	// CookieSecure marks the session cookie as HTTPS-only.
	CookieSecure bool
	// SessionTTL is the session cookie lifetime.
	SessionTTL time.Duration
	// AdminEmails is the admin allow-list.
	AdminEmails []string
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret:    GetEnv("AUTH_JWT_SECRET", ""),
		Issuer:       GetEnv("AUTH_JWT_ISSUER", ""),
		Audience:     GetEnv("AUTH_JWT_AUDIENCE", ""),
		CookieName:   GetEnv("AUTH_COOKIE_NAME", "hs_session"),
		CookieSecure: GetEnvBool("AUTH_COOKIE_SECURE", true),
		SessionTTL:   GetEnvDuration("AUTH_SESSION_TTL", 7*24*time.Hour),
		AdminEmails:  GetEnvList("ADMIN_EMAILS", nil),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least 32 characters")
	}
	if c.CookieName == "" {
		return fmt.Errorf("AUTH_COOKIE_NAME is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("AUTH_SESSION_TTL must be greater than 0")
	}
	return nil
}
