package smtp

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// Sender delivers the confirmation and reset mails over SMTP. Send blocks
// until the relay accepted or rejected the message; the HTTP response for
// the triggering request waits on that result.
type Sender struct {
	lg zerolog.Logger

	host     string
	port     int
	user     string
	pass     string
	from     string
	insecure bool

	timeout time.Duration
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	Insecure bool
}

func NewSender(cfg Config, lg zerolog.Logger) *Sender {
	return &Sender{
		lg:       lg.With().Str("component", "smtp_sender").Logger(),
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.Username,
		pass:     cfg.Password,
		from:     cfg.From,
		insecure: cfg.Insecure,
		timeout:  cfg.Timeout,
	}
}

func (s *Sender) Send(ctx context.Context, toEmail, subject, htmlBody string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(toEmail); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	tlsPolicy := mail.TLSMandatory
	if s.insecure {
		tlsPolicy = mail.TLSOpportunistic
	}

	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithTLSPolicy(tlsPolicy),
	}
	if s.user != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain), mail.WithUsername(s.user), mail.WithPassword(s.pass))
	}

	c, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client init: %w", err)
	}

	s.lg.Debug().Str("host", s.host).Int("port", s.port).Str("to", toEmail).Str("subject", subject).Msg("attempting smtp send")
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		s.lg.Error().Err(err).Str("to", toEmail).Msg("smtp send failed")
		return err
	}

	s.lg.Info().Str("to", toEmail).Str("subject", subject).Msg("smtp send ok")
	return nil
}
