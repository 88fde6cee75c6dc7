package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"phishguard/internal/scanner/models"
	"phishguard/pkg/sentinel"
)

// PostgresRecordStore persists classification results in Postgres.
//
// Expected schema:
//
//	CREATE TABLE urls (
//	    id         UUID PRIMARY KEY,
//	    url        TEXT NOT NULL,
//	    is_safe    BOOLEAN NOT NULL,
//	    confidence DOUBLE PRECISION NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresRecordStore struct {
	pool *pgxpool.Pool
}

func NewPostgresRecordStore(pool *pgxpool.Pool) *PostgresRecordStore {
	return &PostgresRecordStore{pool: pool}
}

func (s *PostgresRecordStore) Create(ctx context.Context, rec models.Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO urls (id, url, is_safe, confidence, created_at) VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.URL, rec.IsSafe, rec.Confidence, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert url record: %w", err)
	}
	return nil
}

func (s *PostgresRecordStore) List(ctx context.Context) ([]models.Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, url, is_safe, confidence, created_at FROM urls ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list url records: %w", err)
	}
	defer rows.Close()

	var recs []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.IsSafe, &rec.Confidence, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan url record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list url records: %w", err)
	}
	return recs, nil
}

func (s *PostgresRecordStore) Delete(ctx context.Context, id string) (models.Record, error) {
	var rec models.Record
	err := s.pool.QueryRow(ctx,
		`DELETE FROM urls WHERE id = $1 RETURNING id, url, is_safe, confidence, created_at`,
		id,
	).Scan(&rec.ID, &rec.URL, &rec.IsSafe, &rec.Confidence, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Record{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("delete url record: %w", err)
	}
	return rec, nil
}
