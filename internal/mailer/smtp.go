package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"
)

// SMTPConfig holds SMTP relay settings.
type SMTPConfig struct {
	Host string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"PORT" envDefault:"587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
}

// SMTP relays messages through an authenticated SMTP server. The visitor's
// address goes in Reply-To; the envelope sender is the relay account.
type SMTP struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(cfg SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if s.cfg.User == "" || s.cfg.Pass == "" {
		return errors.Wrap(ErrNotConfigured, "smtp: credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	err := s.sendMail(net.JoinHostPort(s.cfg.Host, s.cfg.Port), auth, s.cfg.User, []string{msg.ToEmail}, compose(s.cfg.User, msg))
	if err != nil {
		return errors.Wrap(err, "smtp: send")
	}
	return nil
}

func compose(from string, msg Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerValue(msg.FromName))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.FromName, msg.FromEmail, msg.Body)

	return []byte("To: " + msg.ToEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerValue(msg.FromEmail) + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}

var headerBreaks = strings.NewReplacer("\r", " ", "\n", " ")

func headerValue(s string) string {
	return strings.TrimSpace(headerBreaks.Replace(s))
}
