// Package mail renders and delivers transactional notification emails.
package mail

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrDelivery indicates a notification could not be delivered.
var ErrDelivery = errors.New("mail delivery failed")

// Message is a rendered email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer is the mail relay collaborator.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer logs messages instead of sending them. Used when no SMTP relay is configured.
type LogMailer struct {
	logger *zap.SugaredLogger
}

// NewLogMailer creates a new log-only mailer.
func NewLogMailer(logger *zap.SugaredLogger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the envelope of msg.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Infow("mail relay disabled, notification logged",
		"to", strings.Join(msg.To, ","),
		"subject", msg.Subject,
		"body_bytes", len(msg.HTML),
	)
	return nil
}
