package service

import (
	"context"
	"time"

	"phishguard/internal/auth/models"
	dErrors "phishguard/pkg/domain-errors"
)

// Verify checks the presented tokens and reports current authentication and
// admin status. The session token is required; the admin token is optional
// and its absence or failure never fails the call, it only yields
// isAdmin=false. Claims are the source of the principal: tokens are
// stateless, so no store lookup happens here.
func (s *Service) Verify(ctx context.Context, sessionToken, adminToken string) (*models.VerifyResult, error) {
	_, span := s.tracer.Start(ctx, "auth.verify")
	defer span.End()

	if sessionToken == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized")
	}

	start := time.Now()
	claims, err := s.tokens.VerifySession(sessionToken)
	if s.metrics != nil {
		s.metrics.TokenVerifyMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}
	if err != nil {
		return nil, err
	}

	result := &models.VerifyResult{
		Authenticated: true,
		User: models.PublicUser{
			ID:    claims.UserID,
			Email: claims.Email,
		},
	}

	if adminToken != "" {
		if adminClaims, err := s.tokens.VerifyAdmin(adminToken); err == nil && adminClaims.Email == claims.Email {
			result.IsAdmin = true
		}
	}

	return result, nil
}
