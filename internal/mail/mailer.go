// Package mail delivers the two outbound messages this system sends: OTP
// codes to users and contact-form notifications to the support inbox.
package mail

import (
	"context"
	"fmt"
	"log/slog"
)

// Mailer is the outbound email capability. Delivery is best effort; callers
// decide whether a send failure fails the operation.
type Mailer interface {
	SendOTP(ctx context.Context, toEmail, name, code string) error
	SendContactNotification(ctx context.Context, name, email, message string) error
}

// LogMailer logs instead of sending. It backs development environments where
// no mail provider is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendOTP(ctx context.Context, toEmail, name, code string) error {
	m.logger.InfoContext(ctx, "otp mail (log only)", "to", toEmail, "name", name, "code", code)
	return nil
}

func (m *LogMailer) SendContactNotification(ctx context.Context, name, email, message string) error {
	m.logger.InfoContext(ctx, "contact mail (log only)",
		"name", name, "email", email, "message_len", fmt.Sprintf("%d", len(message)))
	return nil
}
