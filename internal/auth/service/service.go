// Package service orchestrates signup, login, logout, and session
// verification against the credential store, OTP service, and token issuer.
package service

import (
	"crypto/subtle"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"phishguard/internal/audit"
	"phishguard/internal/auth/store"
	"phishguard/internal/otp"
	"phishguard/internal/platform/metrics"
	"phishguard/internal/token"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 10

// AdminCredentials is the configured administrator identity. Elevation is a
// plain policy equality against this pair, not a role flag on the record.
type AdminCredentials struct {
	Email    string
	Password string
}

// Service wires the auth operations. Sessions are stateless: no server-side
// session table exists, so nothing here holds per-principal state between
// requests.
type Service struct {
	users   store.UserStore
	tokens  *token.Issuer
	otp     *otp.Service
	audit   *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	admin   AdminCredentials
	tracer  trace.Tracer
}

func NewService(
	users store.UserStore,
	tokens *token.Issuer,
	otpSvc *otp.Service,
	auditPub *audit.Publisher,
	logger *slog.Logger,
	m *metrics.Metrics,
	admin AdminCredentials,
) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		otp:     otpSvc,
		audit:   auditPub,
		logger:  logger,
		metrics: m,
		admin:   admin,
		tracer:  otel.Tracer("phishguard/auth"),
	}
}

// isAdminPair reports whether the submitted credentials equal the configured
// administrator pair. Comparison is constant time; an unconfigured pair never
// matches.
func (s *Service) isAdminPair(email, password string) bool {
	if s.admin.Email == "" || s.admin.Password == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.admin.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	return emailOK && passwordOK
}
