// Package otp implements the one-time-password gate used to confirm control
// of an email address during signup. At most one live code exists per email;
// issuing again overwrites, verifying consumes.
package otp

import (
	"context"
	"time"
)

// Entry is a pending code for one email.
type Entry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Ledger is the injected key-value backing for pending codes. The semantics
// are contract, not incidental map behavior:
//   - Put unconditionally overwrites any existing entry for the email.
//   - Get returns sentinel.ErrNotFound when no entry exists. Implementations
//     may retain entries past ExpiresAt; expiry policy belongs to the service,
//     which must be able to observe (and delete) an expired entry once.
//   - Delete removes the entry; deleting a missing entry is not an error.
//
// A process-local implementation loses all pending codes on restart; that is
// an accepted limitation, not a bug.
type Ledger interface {
	Put(ctx context.Context, email string, entry Entry, ttl time.Duration) error
	Get(ctx context.Context, email string) (Entry, error)
	Delete(ctx context.Context, email string) error
}
