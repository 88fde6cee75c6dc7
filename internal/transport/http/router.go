// Package httptransport composes the public HTTP surface: the domain handlers
// behind a shared middleware chain, plus health and metrics endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "phishguard/internal/auth/handler"
	contacthandler "phishguard/internal/contact/handler"
	"phishguard/internal/platform/middleware"
	scannerhandler "phishguard/internal/scanner/handler"
	"phishguard/internal/token"
)

// SessionValidator adapts the token issuer to the middleware's validator
// interface.
type SessionValidator struct {
	Issuer *token.Issuer
}

func (v SessionValidator) ValidateSession(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := v.Issuer.VerifySession(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.TokenClaims{Email: claims.Email, UserID: claims.UserID}, nil
}

// Handlers carries the per-domain handlers the router mounts.
type Handlers struct {
	Auth    *authhandler.Handler
	Contact *contacthandler.Handler
	Scanner *scannerhandler.Handler
}

// NewRouter wires all public endpoints. Auth and contact routes sit at the
// root, URL checks under /api, matching the paths browser clients already use.
func NewRouter(h Handlers, logger *slog.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	r.Group(func(r chi.Router) {
		h.Auth.Register(r)
		h.Contact.Register(r)
	})
	r.Route("/api", func(r chi.Router) {
		h.Scanner.Register(r)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
