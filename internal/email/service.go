package email

import (
	"context"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Sender delivers one message on the email channel.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender returns a gomail-backed sender.
func NewSender(cfg Config) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) Send(_ context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

type logSender struct {
	logger zerolog.Logger
}

// NewLogSender returns a sender that only logs, for development and
// tests where no SMTP relay exists.
func NewLogSender(logger zerolog.Logger) Sender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(_ context.Context, to, subject, _ string) error {
	s.logger.Info().Str("to", to).Str("subject", subject).Msg("outbound email (log only)")
	return nil
}
