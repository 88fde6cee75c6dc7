// Package store persists contact-form submissions.
package store

import (
	"context"

	"phishguard/internal/contact/models"
)

// MessageStore is implemented by the in-memory and Postgres stores. Lookups
// miss with sentinel.ErrNotFound.
type MessageStore interface {
	Create(ctx context.Context, msg models.Message) error
	List(ctx context.Context) ([]models.Message, error)
	Delete(ctx context.Context, id string) (models.Message, error)
}
