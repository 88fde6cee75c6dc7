// Package store persists URL classification results.
package store

import (
	"context"

	"phishguard/internal/scanner/models"
)

// RecordStore is implemented by the in-memory and Postgres stores. Lookups
// miss with sentinel.ErrNotFound.
type RecordStore interface {
	Create(ctx context.Context, rec models.Record) error
	List(ctx context.Context) ([]models.Record, error)
	Delete(ctx context.Context, id string) (models.Record, error)
}
