package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/config"
	"github.com/festy23/hacksavvy/pkg/retry"
)

// Recipient is a notification addressee.
type Recipient struct {
	Name  string
	Email string
}

// Notifier renders lifecycle notifications and delivers them with retries.
// Callers treat its errors as non-fatal.
type Notifier struct {
	mailer   Mailer
	cfg      config.MailConfig
	retryCfg retry.Config
	logger   *zap.SugaredLogger
}

// NewNotifier creates a new notifier instance.
func NewNotifier(mailer Mailer, cfg config.MailConfig, logger *zap.SugaredLogger) *Notifier {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &Notifier{
		mailer:   mailer,
		cfg:      cfg,
		retryCfg: retry.SMTPConfig(attempts),
		logger:   logger,
	}
}

// NewMailer picks the SMTP relay when configured, the log mailer otherwise.
func NewMailer(cfg config.MailConfig, logger *zap.SugaredLogger) Mailer {
	if cfg.Enabled() {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(logger)
}

// ApplicationReceived sends each team member their own copy of the receipt,
// so no member sees another member's address. Every member is attempted
// and the failures are joined.
func (n *Notifier) ApplicationReceived(ctx context.Context, team TeamSummary, members []Recipient) error {
	recipients := uniqueRecipients(members)
	if len(recipients) == 0 {
		return fmt.Errorf("%w: no recipients", ErrDelivery)
	}

	var errs []error
	for _, r := range recipients {
		html, err := render(templateReceived, n.data("Application Received", r.Name, "PENDING VERIFICATION", "", team))
		if err != nil {
			return err
		}
		if err := n.deliver(ctx, Message{
			To:      []string{r.Email},
			Subject: n.subject("Application Received"),
			HTML:    html,
		}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RegistrationConfirmed notifies the leader that payment was verified.
func (n *Notifier) RegistrationConfirmed(ctx context.Context, team TeamSummary, leader Recipient) error {
	html, err := render(templateConfirmed, n.data("Welcome to "+n.cfg.EventName, leader.Name, "VERIFIED", "", team))
	if err != nil {
		return err
	}
	return n.deliver(ctx, Message{
		To:      []string{leader.Email},
		Subject: n.subject("Registration Confirmed!"),
		HTML:    html,
	})
}

// PaymentRejected notifies the leader that payment could not be verified.
// reason is rendered verbatim (HTML-escaped).
func (n *Notifier) PaymentRejected(ctx context.Context, team TeamSummary, leader Recipient, reason string) error {
	html, err := render(templateRejected, n.data("Payment Verification Failed", leader.Name, "REJECTED", reason, team))
	if err != nil {
		return err
	}
	return n.deliver(ctx, Message{
		To:      []string{leader.Email},
		Subject: n.subject("Payment Verification Failed"),
		HTML:    html,
	})
}

// SeatReserved notifies a legacy registrant that payment was verified.
func (n *Notifier) SeatReserved(ctx context.Context, team TeamSummary, registrant Recipient) error {
	if team.Name == "" {
		team.Name = "Individual"
	}
	html, err := render(templateLegacyVerified, n.data("Payment Confirmed!", registrant.Name, "VERIFIED", "", team))
	if err != nil {
		return err
	}
	return n.deliver(ctx, Message{
		To:      []string{registrant.Email},
		Subject: n.subject("Payment Verified & Seat Reserved"),
		HTML:    html,
	})
}

func (n *Notifier) subject(prefix string) string {
	return prefix + " - " + n.cfg.EventName
}

func (n *Notifier) data(heading, recipient, status, reason string, team TeamSummary) templateData {
	return templateData{
		Heading:      heading,
		EventName:    n.cfg.EventName,
		DashboardURL: n.cfg.DashboardURL,
		Recipient:    recipient,
		Status:       status,
		Reason:       reason,
		Team:         team,
	}
}

func (n *Notifier) deliver(ctx context.Context, msg Message) error {
	attempt := 0
	err := retry.Do(ctx, n.retryCfg, func() error {
		attempt++
		sendErr := n.mailer.Send(ctx, msg)
		if sendErr != nil {
			n.logger.Debugw("mail attempt failed", "attempt", attempt, "subject", msg.Subject, "error", sendErr)
		}
		return sendErr
	})
	if err != nil {
		return fmt.Errorf("%w: %s to %s after %d attempt(s): %v",
			ErrDelivery, msg.Subject, strings.Join(msg.To, ","), attempt, err)
	}
	return nil
}

// uniqueRecipients drops members without an email and repeated addresses,
// compared case-insensitively.
func uniqueRecipients(recipients []Recipient) []Recipient {
	seen := make(map[string]struct{}, len(recipients))
	out := make([]Recipient, 0, len(recipients))
	for _, r := range recipients {
		r.Email = strings.TrimSpace(r.Email)
		if r.Email == "" {
			continue
		}
		key := strings.ToLower(r.Email)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
