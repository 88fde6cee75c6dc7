// Package audit records an append-only trail of authentication events.
// Emission is fire-and-forget: a full queue drops the event rather than
// blocking a request.
package audit

import "time"

// Action names an auditable event.
type Action string

const (
	ActionSignup      Action = "signup"
	ActionLogin       Action = "login"
	ActionLoginFailed Action = "login_failed"
	ActionLogout      Action = "logout"
	ActionOTPSent     Action = "otp_sent"
	ActionOTPVerified Action = "otp_verified"
)

// Event is one audit record.
type Event struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Email     string    `json:"email,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Device    string    `json:"device,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
