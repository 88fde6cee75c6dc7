// Package handler exposes the contact-form routes.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"phishguard/internal/contact/models"
	"phishguard/internal/transport/http/shared"
	dErrors "phishguard/pkg/domain-errors"
	"phishguard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/contact_service_mock.go -package=mocks ContactService

// ContactService defines the contact operations the handler needs.
type ContactService interface {
	Send(ctx context.Context, req models.SendRequest) (*models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
	Delete(ctx context.Context, id string) (models.Message, error)
}

type Handler struct {
	contact ContactService
	logger  *slog.Logger
}

func New(contact ContactService, logger *slog.Logger) *Handler {
	return &Handler{contact: contact, logger: logger}
}

// Register registers the contact routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/send", h.handleSend)
	r.Get("/contacts", h.handleList)
	r.Delete("/contacts/{id}", h.handleDelete)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Email != "" && !govalidator.IsEmail(req.Email) {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid email"))
		return
	}

	if _, err := h.contact.Send(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "contact submission failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully!"})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.contact.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, msgs)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	msg, err := h.contact.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, msg)
}
