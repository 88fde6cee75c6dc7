package models

import "time"

// User is a credential record. PasswordHash never leaves the auth packages.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Public returns the caller-visible fields of a user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// PublicUser is the shape users take in HTTP responses.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignupRequest is the POST /signup body.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendOTPRequest is the POST /send-otp body.
type SendOTPRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// VerifyOTPRequest is the POST /verify-otp body.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// AuthResult carries the outcome of a signup or login: the public user,
// always a session token, and an admin token only for the configured
// administrator identity.
type AuthResult struct {
	User         PublicUser
	SessionToken string
	AdminToken   string
}

// VerifyResult is the GET /auth response payload.
type VerifyResult struct {
	Authenticated bool       `json:"authenticated"`
	User          PublicUser `json:"user"`
	IsAdmin       bool       `json:"isAdmin"`
}
