package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"phishguard/internal/contact/models"
	"phishguard/pkg/sentinel"
)

// PostgresMessageStore persists contact-form submissions in Postgres.
//
// Expected schema:
//
//	CREATE TABLE contacts (
//	    id         UUID PRIMARY KEY,
//	    name       TEXT NOT NULL,
//	    email      TEXT NOT NULL,
//	    message    TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresMessageStore struct {
	pool *pgxpool.Pool
}

func NewPostgresMessageStore(pool *pgxpool.Pool) *PostgresMessageStore {
	return &PostgresMessageStore{pool: pool}
}

func (s *PostgresMessageStore) Create(ctx context.Context, msg models.Message) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contacts (id, name, email, message, created_at) VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (s *PostgresMessageStore) List(ctx context.Context) ([]models.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, message, created_at FROM contacts ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return msgs, nil
}

func (s *PostgresMessageStore) Delete(ctx context.Context, id string) (models.Message, error) {
	var msg models.Message
	err := s.pool.QueryRow(ctx,
		`DELETE FROM contacts WHERE id = $1 RETURNING id, name, email, message, created_at`,
		id,
	).Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Message{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Message{}, fmt.Errorf("delete contact: %w", err)
	}
	return msg, nil
}
