package memory

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender is the dev stand-in for the SMTP relay: it logs the message
// instead of delivering it and always reports success.
type LogSender struct {
	lg zerolog.Logger
}

func NewLogSender(lg zerolog.Logger) *LogSender {
	return &LogSender{lg: lg.With().Str("component", "log_sender").Logger()}
}

func (s *LogSender) Send(ctx context.Context, toEmail, subject, htmlBody string) error {
	s.lg.Info().
		Str("to", toEmail).
		Str("subject", subject).
		Str("body", htmlBody).
		Msg("email (not delivered, log sender active)")
	return nil
}
