package store

import (
	"context"

	"phishguard/internal/auth/models"
)

// UserStore is interface-driven to keep the auth service testable and to
// allow swapping in-memory and Postgres persistence without rewiring
// business code.
//
// Lookups are by exact, case-sensitive email, matching how records are
// stored. Create returns sentinel.ErrConflict when the email is taken;
// FindByEmail and Delete return sentinel.ErrNotFound for unknown records.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) (models.User, error)
}
