package service

import (
	"context"
	"errors"

	"phishguard/internal/auth/models"
	dErrors "phishguard/pkg/domain-errors"
	"phishguard/pkg/sentinel"
)

// ListUsers returns every credential record's public fields. The hash never
// crosses this boundary.
func (s *Service) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	out := make([]models.PublicUser, 0, len(users))
	for _, user := range users {
		out = append(out, user.Public())
	}
	return out, nil
}

// DeleteUser removes a credential record by ID and returns its public fields.
func (s *Service) DeleteUser(ctx context.Context, id string) (models.PublicUser, error) {
	user, err := s.users.Delete(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.PublicUser{}, dErrors.New(dErrors.CodeNotFound, "User not found")
	}
	if err != nil {
		return models.PublicUser{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}
	return user.Public(), nil
}
