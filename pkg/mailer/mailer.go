package mailer

import (
	"context"

	"go.uber.org/zap"
)

// Mailer delivers outbound account mail. Callers treat delivery as
// fire-and-forget; a failed send must never fail the request that
// triggered it.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
}

type logMailer struct {
	log *zap.Logger
}

// NewLogMailer returns a Mailer that only records the message. Used
// until real SMTP delivery is wired to the EmailConfig settings.
func NewLogMailer(log *zap.Logger) Mailer {
	return &logMailer{log: log}
}

func (m *logMailer) SendVerificationEmail(ctx context.Context, email, token string) error {
	m.log.Info("Verification email dispatched",
		zap.String("email", email),
		zap.String("token", token),
	)
	return nil
}
