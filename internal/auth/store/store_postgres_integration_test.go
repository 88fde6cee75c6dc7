//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"phishguard/internal/auth/models"
	"phishguard/internal/auth/store"
	"phishguard/pkg/sentinel"
	"phishguard/pkg/testutil/containers"
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresUserStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresUserStore
	ctx      context.Context
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.NewPostgresContainer(s.T(), usersSchema)
	s.store = store.NewPostgresUserStore(s.postgres.Pool)
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "users"))
}

func (s *PostgresUserStoreSuite) newUser(email string) models.User {
	return models.User{
		ID:           uuid.New().String(),
		Name:         "Ada",
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *PostgresUserStoreSuite) TestCreateAndFind() {
	user := s.newUser("ada@example.com")
	s.Require().NoError(s.store.Create(s.ctx, user))

	got, err := s.store.FindByEmail(s.ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
	s.Equal(user.PasswordHash, got.PasswordHash)
	s.WithinDuration(user.CreatedAt, got.CreatedAt, time.Second)
}

func (s *PostgresUserStoreSuite) TestDuplicateEmailConflicts() {
	s.Require().NoError(s.store.Create(s.ctx, s.newUser("ada@example.com")))

	err := s.store.Create(s.ctx, s.newUser("ada@example.com"))
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresUserStoreSuite) TestUnknownEmailIsNotFound() {
	_, err := s.store.FindByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresUserStoreSuite) TestListOrdersByCreation() {
	first := s.newUser("first@example.com")
	second := s.newUser("second@example.com")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)

	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(s.store.Create(s.ctx, first))

	users, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("first@example.com", users[0].Email)
	s.Equal("second@example.com", users[1].Email)
}

func (s *PostgresUserStoreSuite) TestDeleteReturnsTheRecord() {
	user := s.newUser("ada@example.com")
	s.Require().NoError(s.store.Create(s.ctx, user))

	deleted, err := s.store.Delete(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user.Email, deleted.Email)

	_, err = s.store.FindByEmail(s.ctx, user.Email)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.Delete(s.ctx, user.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
