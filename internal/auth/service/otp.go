package service

import (
	"context"

	"phishguard/internal/audit"
	"phishguard/internal/otp"
)

// SendOTP issues a fresh code for the email and mails it. A pending code for
// the same email is overwritten.
func (s *Service) SendOTP(ctx context.Context, email, name string) error {
	ctx, span := s.tracer.Start(ctx, "auth.send_otp")
	defer span.End()

	if err := s.otp.Issue(ctx, email, name); err != nil {
		return err
	}
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionOTPSent, Email: email})
	return nil
}

// VerifyOTP checks a submitted code, surfacing the ledger's four outcomes.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (otp.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "auth.verify_otp")
	defer span.End()

	outcome, err := s.otp.Verify(ctx, email, code)
	if err != nil {
		return "", err
	}
	if outcome == otp.OutcomeOk {
		s.audit.Emit(ctx, audit.Event{Action: audit.ActionOTPVerified, Email: email})
	}
	return outcome, nil
}
