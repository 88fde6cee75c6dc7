// Package service implements contact-form intake: submissions are persisted
// first, then a notification email goes to the support inbox.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"phishguard/internal/contact/models"
	"phishguard/internal/contact/store"
	"phishguard/internal/mail"
	dErrors "phishguard/pkg/domain-errors"
	"phishguard/pkg/requestcontext"
	"phishguard/pkg/sentinel"
)

type Service struct {
	messages store.MessageStore
	mailer   mail.Mailer
	logger   *slog.Logger
}

func NewService(messages store.MessageStore, mailer mail.Mailer, logger *slog.Logger) *Service {
	return &Service{messages: messages, mailer: mailer, logger: logger}
}

// Send persists the submission and then emails the support inbox. The record
// survives a mail failure; the caller still sees the failure.
func (s *Service) Send(ctx context.Context, req models.SendRequest) (*models.Message, error) {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "All fields are required")
	}

	msg := models.Message{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error sending message")
	}

	if err := s.mailer.SendContactNotification(ctx, msg.Name, msg.Email, msg.Message); err != nil {
		s.logger.ErrorContext(ctx, "contact notification failed",
			"error", err.Error(),
			"contact_id", msg.ID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error sending message")
	}
	return &msg, nil
}

func (s *Service) List(ctx context.Context) ([]models.Message, error) {
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to load messages")
	}
	return msgs, nil
}

func (s *Service) Delete(ctx context.Context, id string) (models.Message, error) {
	msg, err := s.messages.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Message{}, dErrors.New(dErrors.CodeNotFound, "Message not found")
		}
		return models.Message{}, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to delete message")
	}
	return msg, nil
}
