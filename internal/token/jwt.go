// Package token issues and verifies the two signed bearer artifacts: the
// session token proving a login and the admin token granting elevation.
// Tokens are stateless; validity is a function of signature and expiry only,
// so logout amounts to the client forgetting them.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "phishguard/pkg/domain-errors"
)

const (
	// SessionTTL bounds how long a session token is accepted after issuance.
	SessionTTL = time.Hour
	// AdminTTL bounds the admin token lifetime.
	AdminTTL = 3 * time.Hour
)

// Claims represents the JWT claims carried by both token kinds.
type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Issuer creates and verifies session and admin tokens. The two kinds use
// distinct signing keys so a leaked session key never mints admin tokens.
type Issuer struct {
	sessionKey []byte
	adminKey   []byte
	issuer     string
}

func NewIssuer(sessionKey, adminKey string) *Issuer {
	return &Issuer{
		sessionKey: []byte(sessionKey),
		adminKey:   []byte(adminKey),
		issuer:     "phishguard",
	}
}

// IssueSession produces a signed session token valid for SessionTTL.
func (i *Issuer) IssueSession(email, userID string) (string, error) {
	return i.sign(email, userID, i.sessionKey, SessionTTL)
}

// IssueAdmin produces a signed admin token valid for AdminTTL. Callers decide
// the policy; this only signs.
func (i *Issuer) IssueAdmin(email, userID string) (string, error) {
	return i.sign(email, userID, i.adminKey, AdminTTL)
}

func (i *Issuer) sign(email, userID string, key []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    i.issuer,
			ID:        uuid.NewString(),
		},
	})
	return newToken.SignedString(key)
}

// VerifySession checks a session token. Expired and forged tokens collapse
// into the same forbidden outcome; callers never learn which.
func (i *Issuer) VerifySession(tokenString string) (*Claims, error) {
	return verify(tokenString, i.sessionKey)
}

// VerifyAdmin checks an admin token against the admin signing key.
func (i *Issuer) VerifyAdmin(tokenString string) (*Claims, error) {
	return verify(tokenString, i.adminKey)
}

func verify(tokenString string, key []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return key, nil
	})
	if err != nil {
		// Expired and forged both land here on purpose.
		return nil, dErrors.Wrap(err, dErrors.CodeForbidden, "invalid or expired token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeForbidden, "invalid or expired token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeForbidden, "invalid or expired token")
	}

	return claims, nil
}
