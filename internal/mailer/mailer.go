// Package mailer is the outbound email channel. The Mailer interface is
// injected wherever mail is sent; nothing in the codebase reaches for a
// process-wide sender.
package mailer

import (
	"context"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"reviewhub/internal/config"
)

// Mailer delivers a single message. Implementations report delivery
// failures to the caller instead of swallowing them.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail over SMTP via gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

func NewSMTPMailer(cfg *config.Config, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
		logger: logger,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error().Err(err).Str("to", to).Msg("email dispatch failed")
		return err
	}

	m.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
