// Package handler exposes the URL-check routes.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"phishguard/internal/scanner/models"
	"phishguard/internal/transport/http/shared"
	dErrors "phishguard/pkg/domain-errors"
	"phishguard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/scanner_service_mock.go -package=mocks ScannerService

// ScannerService defines the URL-check operations the handler needs.
type ScannerService interface {
	Check(ctx context.Context, url string) (*models.CheckResult, error)
	List(ctx context.Context) ([]models.Record, error)
	Delete(ctx context.Context, id string) (models.Record, error)
}

type Handler struct {
	scanner ScannerService
	logger  *slog.Logger
}

func New(scanner ScannerService, logger *slog.Logger) *Handler {
	return &Handler{scanner: scanner, logger: logger}
}

// Register registers the URL-check routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/check-url", h.handleCheck)
	r.Get("/urls", h.handleList)
	r.Delete("/urls/{id}", h.handleDelete)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.scanner.Check(ctx, req.URL)
	if err != nil {
		h.logger.WarnContext(ctx, "url check failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.scanner.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, recs)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	rec, err := h.scanner.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, rec)
}
