package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"phishguard/pkg/requestcontext"
)

// SessionCookie and AdminCookie name the two token cookies. The session token
// is also accepted as an Authorization bearer value; the server takes either.
const (
	SessionCookie = "authToken"
	AdminCookie   = "adminToken"
)

// TokenValidator validates a session token and returns the claims the
// middleware needs.
type TokenValidator interface {
	ValidateSession(tokenString string) (*TokenClaims, error)
}

// TokenClaims represents the claims we expect from the token validator.
type TokenClaims struct {
	Email  string
	UserID string
}

type contextKeyEmail struct{}
type contextKeyUserID struct{}

var (
	ContextKeyEmail  = contextKeyEmail{}
	ContextKeyUserID = contextKeyUserID{}
)

// GetEmail retrieves the authenticated principal's email from the context.
func GetEmail(ctx context.Context) string {
	email, ok := ctx.Value(ContextKeyEmail).(string)
	if !ok {
		return ""
	}
	return email
}

// GetUserID retrieves the authenticated user ID from the context.
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(ContextKeyUserID).(string)
	if !ok {
		return ""
	}
	return userID
}

// ExtractSessionToken pulls the session token from the Authorization header,
// falling back to the session cookie. Returns "" when neither is present.
func ExtractSessionToken(r *http.Request) string {
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && after != "" {
		return after
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

// ExtractAdminToken pulls the admin token from its cookie. Returns "" when
// absent; a missing admin token is never an error.
func ExtractAdminToken(r *http.Request) string {
	if c, err := r.Cookie(AdminCookie); err == nil {
		return c.Value
	}
	return ""
}

// RequireAuth rejects requests without a valid session token: 401 when no
// token is supplied, 403 when the supplied token fails verification. Expired
// and forged tokens are deliberately indistinguishable to the caller.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := ExtractSessionToken(r)
			if token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"Unauthorized"}`))
				return
			}

			claims, err := validator.ValidateSession(token)
			if err != nil {
				logger.WarnContext(ctx, "forbidden access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","message":"Invalid or expired token"}`))
				return
			}

			ctx = context.WithValue(ctx, ContextKeyEmail, claims.Email)
			ctx = context.WithValue(ctx, ContextKeyUserID, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
