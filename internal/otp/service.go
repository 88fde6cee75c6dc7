package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"phishguard/internal/mail"
	"phishguard/internal/platform/metrics"
	dErrors "phishguard/pkg/domain-errors"
	"phishguard/pkg/requestcontext"
	"phishguard/pkg/sentinel"
)

// TTL is the window within which an issued code must be verified.
const TTL = 5 * time.Minute

// Outcome classifies a verification attempt.
type Outcome string

const (
	OutcomeOk           Outcome = "ok"
	OutcomeNotRequested Outcome = "not_requested"
	OutcomeMismatch     Outcome = "mismatch"
	OutcomeExpired      Outcome = "expired"
)

// Service issues and verifies single-use codes against the injected Ledger.
type Service struct {
	ledger  Ledger
	mailer  mail.Mailer
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(ledger Ledger, mailer mail.Mailer, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{ledger: ledger, mailer: mailer, logger: logger, metrics: m}
}

// Issue generates a fresh 6-digit code for the email, overwriting any pending
// entry, and mails it. The code is never returned to the HTTP caller.
func (s *Service) Issue(ctx context.Context, email, name string) error {
	if email == "" || name == "" {
		return dErrors.New(dErrors.CodeValidation, "Missing fields")
	}

	code, err := generateCode()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "Failed to send OTP")
	}

	now := requestcontext.Now(ctx)
	entry := Entry{Code: code, ExpiresAt: now.Add(TTL)}
	if err := s.ledger.Put(ctx, email, entry, TTL); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "Failed to send OTP")
	}

	if err := s.mailer.SendOTP(ctx, email, name, code); err != nil {
		s.logger.ErrorContext(ctx, "otp mail send failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "Failed to send OTP")
	}

	if s.metrics != nil {
		s.metrics.OTPsIssued.Inc()
	}
	return nil
}

// Verify checks a submitted code. Expiry takes precedence over mismatch and
// deletes the entry regardless of what was submitted; a match consumes the
// entry (single use); a mismatch before expiry leaves it valid for a retry.
func (s *Service) Verify(ctx context.Context, email, submitted string) (Outcome, error) {
	entry, err := s.ledger.Get(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.observe(OutcomeNotRequested)
		return OutcomeNotRequested, nil
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "OTP verification failed")
	}

	now := requestcontext.Now(ctx)
	if now.After(entry.ExpiresAt) {
		if err := s.ledger.Delete(ctx, email); err != nil {
			s.logger.WarnContext(ctx, "failed to delete expired otp entry", "error", err)
		}
		s.observe(OutcomeExpired)
		return OutcomeExpired, nil
	}

	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(submitted)), []byte(entry.Code)) != 1 {
		s.observe(OutcomeMismatch)
		return OutcomeMismatch, nil
	}

	if err := s.ledger.Delete(ctx, email); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "OTP verification failed")
	}
	s.observe(OutcomeOk)
	return OutcomeOk, nil
}

func (s *Service) observe(outcome Outcome) {
	if s.metrics != nil {
		s.metrics.ObserveOTPVerification(string(outcome))
	}
}

// generateCode returns a uniform-random 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
