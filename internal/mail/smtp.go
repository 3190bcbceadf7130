package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/festy23/hacksavvy/internal/config"
)

// SMTPMailer delivers messages through an SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer creates a mailer for the configured relay.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) newClient() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTimeout(m.cfg.Timeout),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}
	return gomail.NewClient(m.cfg.Host, opts...)
}

func (m *SMTPMailer) buildMessage(msg Message) (*gomail.Msg, error) {
	out := gomail.NewMsg()
	if err := out.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.cfg.From, err)
	}
	if err := out.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipients: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return out, nil
}

// Send delivers msg using a fresh connection.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("%w: no recipients", ErrDelivery)
	}
	out, err := m.buildMessage(msg)
	if err != nil {
		return err
	}
	client, err := m.newClient()
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
