package config

import (
	"fmt"
	"time"
)

// MailConfig holds SMTP relay and notification content configuration.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the sender address of every notification.
	From string
	// Timeout bounds a single SMTP delivery attempt.
	Timeout time.Duration
	// MaxAttempts is the number of delivery attempts per message.
	MaxAttempts int
	// EventName is used in subjects and bodies.
	EventName string
	// DashboardURL is linked from the confirmation email.
	DashboardURL string
}

// LoadMailConfigFromEnv loads mail configuration from environment variables.
func LoadMailConfigFromEnv() MailConfig {
	return MailConfig{
		Host:         GetEnv("SMTP_HOST", ""),
		Port:         GetEnvInt("SMTP_PORT", 587),
		Username:     GetEnv("SMTP_USERNAME", ""),
		Password:     GetEnv("SMTP_PASSWORD", ""),
		From:         GetEnv("MAIL_FROM", "no-reply@hacksavvy.local"),
		Timeout:      GetEnvDuration("MAIL_TIMEOUT", 10*time.Second),
		MaxAttempts:  GetEnvInt("MAIL_RETRY_MAX_ATTEMPTS", 3),
		EventName:    GetEnv("EVENT_NAME", "Hacksavvy 2026"),
		DashboardURL: GetEnv("DASHBOARD_URL", "http://localhost:8080/dashboard"),
	}
}

// Enabled reports whether an SMTP relay is configured.
// Without one, notifications are only logged.
func (c MailConfig) Enabled() bool {
	return c.Host != ""
}

// Validate validates mail configuration.
func (c MailConfig) Validate() error {
	if c.From == "" {
		return fmt.Errorf("MAIL_FROM is required")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("MAIL_RETRY_MAX_ATTEMPTS must be greater than 0")
	}
	if !c.Enabled() {
		return nil
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP_PORT: %d", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("MAIL_TIMEOUT must be greater than 0")
	}
	return nil
}
