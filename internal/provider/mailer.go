package provider

import (
	"context"

	mail "github.com/wneessen/go-mail"

	"github.com/impulse-lab/lab-booking-service/internal/config"
)

// Mailer sends plain-text notification emails.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
	Enabled() bool
}

type smtpMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer builds an SMTP mailer. When no host is configured the mailer
// reports disabled and Send is never called, matching local development.
func NewSMTPMailer(cfg config.MailConfig) (Mailer, error) {
	if cfg.SMTPHost == "" {
		return &smtpMailer{from: cfg.From}, nil
	}

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		return nil, err
	}
	return &smtpMailer{client: client, from: cfg.From}, nil
}

func (m *smtpMailer) Enabled() bool {
	return m.client != nil
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return m.client.DialAndSendWithContext(ctx, msg)
}
