package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"phishguard/internal/audit"
	"phishguard/internal/auth/device"
	"phishguard/internal/auth/models"
	dErrors "phishguard/pkg/domain-errors"
	"phishguard/pkg/sentinel"
)

// Login validates credentials and issues tokens exactly as signup does.
func (s *Service) Login(ctx context.Context, req models.LoginRequest, userAgent string) (*models.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "auth.login")
	defer span.End()

	if req.Email == "" || req.Password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "All fields required")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if s.metrics != nil {
			s.metrics.LoginFailures.Inc()
		}
		s.audit.Emit(ctx, audit.Event{
			Action: audit.ActionLoginFailed,
			Email:  req.Email,
			Device: device.ParseUserAgent(userAgent),
		})
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
	}

	result, err := s.issueTokens(user, req.Password)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Logins.Inc()
	}
	s.audit.Emit(ctx, audit.Event{
		Action: audit.ActionLogin,
		Email:  user.Email,
		UserID: user.ID,
		Device: device.ParseUserAgent(userAgent),
	})

	return result, nil
}

// Logout records the event. Tokens are stateless, so the actual invalidation
// is the transport layer expiring the cookies and the client forgetting its
// copy; there is nothing to revoke server-side.
func (s *Service) Logout(ctx context.Context, email string) {
	s.audit.Emit(ctx, audit.Event{
		Action: audit.ActionLogout,
		Email:  email,
	})
}
