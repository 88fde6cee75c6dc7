package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"phishguard/internal/audit"
	"phishguard/internal/auth/device"
	"phishguard/internal/auth/models"
	dErrors "phishguard/pkg/domain-errors"
	"phishguard/pkg/requestcontext"
	"phishguard/pkg/sentinel"
)

// Signup creates a credential record and logs the new user in. The OTP step
// is enforced by the client flow, not here; a direct API call can create an
// account without it.
func (s *Service) Signup(ctx context.Context, req models.SignupRequest, userAgent string) (*models.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "auth.signup")
	defer span.End()

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "All fields are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "User already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	result, err := s.issueTokens(user, req.Password)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementUsersCreated()
	}
	s.audit.Emit(ctx, audit.Event{
		Action: audit.ActionSignup,
		Email:  user.Email,
		UserID: user.ID,
		Device: device.ParseUserAgent(userAgent),
	})

	return result, nil
}

// issueTokens mints the session token and, for the configured administrator
// pair, the admin token. Shared by signup and login so both issue
// identically.
func (s *Service) issueTokens(user models.User, submittedPassword string) (*models.AuthResult, error) {
	sessionToken, err := s.tokens.IssueSession(user.Email, user.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	result := &models.AuthResult{
		User:         user.Public(),
		SessionToken: sessionToken,
	}

	if s.isAdminPair(user.Email, submittedPassword) {
		adminToken, err := s.tokens.IssueAdmin(user.Email, user.ID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
		}
		result.AdminToken = adminToken
	}

	return result, nil
}
