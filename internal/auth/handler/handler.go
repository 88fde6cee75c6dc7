// Package handler is the thin HTTP layer over the auth service. It owns the
// cookie transport and delegates everything else.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"phishguard/internal/auth/models"
	"phishguard/internal/otp"
	"phishguard/internal/platform/middleware"
	"phishguard/internal/transport/http/shared"
	dErrors "phishguard/pkg/domain-errors"
	"phishguard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/auth_service_mock.go -package=mocks AuthService

// AuthService defines the auth operations the handler needs.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest, userAgent string) (*models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest, userAgent string) (*models.AuthResult, error)
	Logout(ctx context.Context, email string)
	Verify(ctx context.Context, sessionToken, adminToken string) (*models.VerifyResult, error)
	SendOTP(ctx context.Context, email, name string) error
	VerifyOTP(ctx context.Context, email, code string) (otp.Outcome, error)
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
	DeleteUser(ctx context.Context, id string) (models.PublicUser, error)
}

// Handler handles the auth and user-collection endpoints.
type Handler struct {
	auth          AuthService
	guard         func(http.Handler) http.Handler
	logger        *slog.Logger
	secureCookies bool
}

// New builds the handler. guard is the session-token middleware mounted in
// front of the verification endpoint; it owns the 401/403 responses for
// missing and invalid tokens.
func New(auth AuthService, guard func(http.Handler) http.Handler, logger *slog.Logger, secureCookies bool) *Handler {
	return &Handler{auth: auth, guard: guard, logger: logger, secureCookies: secureCookies}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.With(h.guard).Get("/auth", h.handleVerify)
	r.Post("/send-otp", h.handleSendOTP)
	r.Post("/verify-otp", h.handleVerifyOTP)

	r.Get("/users", h.handleListUsers)
	r.Delete("/users/{id}", h.handleDeleteUser)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "All fields are required"))
		return
	}
	if !govalidator.IsEmail(req.Email) {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid email"))
		return
	}

	result, err := h.auth.Signup(ctx, req, r.UserAgent())
	if err != nil {
		h.warn(ctx, "signup failed", err)
		shared.WriteError(w, err)
		return
	}

	h.setAuthCookies(w, result)
	shared.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created and logged in successfully",
		"user":    result.User,
		"token":   result.SessionToken,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.auth.Login(ctx, req, r.UserAgent())
	if err != nil {
		h.warn(ctx, "login failed", err)
		shared.WriteError(w, err)
		return
	}

	h.setAuthCookies(w, result)
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   result.SessionToken,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Best-effort principal attribution for the audit trail; logout succeeds
	// regardless of token state.
	email := ""
	if tok := middleware.ExtractSessionToken(r); tok != "" {
		if verified, err := h.auth.Verify(ctx, tok, ""); err == nil {
			email = verified.User.Email
		}
	}
	h.auth.Logout(ctx, email)

	h.clearAuthCookies(w)
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.auth.Verify(ctx, middleware.ExtractSessionToken(r), middleware.ExtractAdminToken(r))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Email == "" || req.Name == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "Missing fields"))
		return
	}
	if !govalidator.IsEmail(req.Email) {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid email"))
		return
	}

	if err := h.auth.SendOTP(ctx, req.Email, req.Name); err != nil {
		h.warn(ctx, "send otp failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "OTP sent successfully"})
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	outcome, err := h.auth.VerifyOTP(ctx, req.Email, req.OTP)
	if err != nil {
		h.warn(ctx, "verify otp failed", err)
		shared.WriteError(w, err)
		return
	}

	switch outcome {
	case otp.OutcomeOk:
		shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "OTP verified successfully!"})
	case otp.OutcomeNotRequested:
		shared.WriteError(w, dErrors.New(dErrors.CodeRetryable, "OTP expired or not requested"))
	case otp.OutcomeExpired:
		shared.WriteError(w, dErrors.New(dErrors.CodeRetryable, "OTP expired"))
	default:
		shared.WriteError(w, dErrors.New(dErrors.CodeRetryable, "Invalid OTP"))
	}
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		h.warn(r.Context(), "list users failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.DeleteUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.warn(r.Context(), "delete user failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, user)
}

// setAuthCookies installs the session cookie and, when present, the admin
// cookie. The cookie outlives the token on purpose: validity is decided by
// the token expiry, not the cookie lifetime.
func (h *Handler) setAuthCookies(w http.ResponseWriter, result *models.AuthResult) {
	http.SetCookie(w, h.cookie(middleware.SessionCookie, result.SessionToken, 24*time.Hour))
	if result.AdminToken != "" {
		http.SetCookie(w, h.cookie(middleware.AdminCookie, result.AdminToken, 24*time.Hour))
	}
}

// clearAuthCookies expires both cookies immediately. Both are always cleared;
// a stale admin cookie must not survive a logout.
func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.SessionCookie, middleware.AdminCookie} {
		c := h.cookie(name, "", 0)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

func (h *Handler) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteNoneMode,
	}
}

func (h *Handler) warn(ctx context.Context, msg string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	h.logger.WarnContext(ctx, msg,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
}
