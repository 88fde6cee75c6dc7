// Package sessionclient is a Go client for the phishguard auth API. It mirrors
// the browser's reconciliation loop: the server is the source of truth for
// {authenticated, isAdmin}, the local cache is a fallback for when the server
// is momentarily unreachable.
package sessionclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Status is the client's current belief about the session. Unknown is
// reported while no verification has completed yet.
type Status string

const (
	StatusUnknown         Status = "unknown"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// Session is the outcome of a verification pass.
type Session struct {
	Status  Status
	IsAdmin bool
	User    User
	// FromCache marks a degraded result: the server could not be reached and
	// IsAdmin comes from the local cache.
	FromCache bool
}

// User is the public credential record the server returns.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

const (
	defaultAttempts   = 3
	defaultRetryDelay = 1500 * time.Millisecond
	sessionCookie     = "authToken"
)

// Client talks to the auth service and keeps a persistent session cache.
// Methods are safe for concurrent use.
type Client struct {
	baseURL    string
	http       *http.Client
	cache      Store
	logger     *slog.Logger
	attempts   int
	retryDelay time.Duration

	mu     sync.RWMutex
	status Status
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetryPolicy overrides the verification retry bound and delay.
func WithRetryPolicy(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		c.retryDelay = delay
	}
}

func New(baseURL string, cache Store, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		logger:     logger,
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
		status:     StatusUnknown,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status returns the client's current belief. It stays Unknown until a
// verification pass completes, so callers never see authenticated while a
// check is still in flight.
func (c *Client) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

type verifyResponse struct {
	Authenticated bool `json:"authenticated"`
	User          User `json:"user"`
	IsAdmin       bool `json:"isAdmin"`
}

// VerifyAuth reconciles the cached session with the server. No cached token
// means immediately unauthenticated. Otherwise the verify endpoint is called
// with the token as both bearer header and cookie, retrying on transport
// failures; a definitive server verdict (2xx, 401, 403) ends the loop. When
// every attempt fails the cached isAdmin value is served as a degraded
// fallback. Context cancellation aborts the wait between attempts.
func (c *Client) VerifyAuth(ctx context.Context) (Session, error) {
	state, err := c.cache.Load()
	if err != nil {
		return Session{Status: StatusUnknown}, fmt.Errorf("load session cache: %w", err)
	}
	if state.Token == "" {
		c.setStatus(StatusUnauthenticated)
		return Session{Status: StatusUnauthenticated}, nil
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		resp, definitive, err := c.verifyOnce(ctx, state.Token)
		if err == nil && definitive {
			if !resp.Authenticated {
				_ = c.cache.Clear()
				c.setStatus(StatusUnauthenticated)
				return Session{Status: StatusUnauthenticated}, nil
			}
			state.IsAdmin = resp.IsAdmin
			if err := c.cache.Save(state); err != nil {
				c.logger.Warn("failed to persist session state", "error", err.Error())
			}
			c.setStatus(StatusAuthenticated)
			return Session{Status: StatusAuthenticated, IsAdmin: resp.IsAdmin, User: resp.User}, nil
		}
		lastErr = err

		if attempt < c.attempts {
			select {
			case <-ctx.Done():
				return Session{Status: StatusUnknown}, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}

	// Server unreachable. Trust the cache rather than forcing a logout.
	c.logger.Warn("verification unreachable, falling back to cached session",
		"attempts", c.attempts,
		"error", errString(lastErr),
	)
	c.setStatus(StatusAuthenticated)
	return Session{Status: StatusAuthenticated, IsAdmin: state.IsAdmin, FromCache: true}, nil
}

// verifyOnce performs a single verification round trip. definitive reports
// whether the server gave a final verdict; transport errors and 5xx responses
// are retried.
func (c *Client) verifyOnce(ctx context.Context, token string) (verifyResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth", nil)
	if err != nil {
		return verifyResponse{}, false, fmt.Errorf("build verify request: %w", err)
	}
	c.attachToken(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return verifyResponse{}, false, fmt.Errorf("call verify: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var out verifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return verifyResponse{}, false, fmt.Errorf("decode verify response: %w", err)
		}
		return out, true, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// The server has spoken: the token is missing, expired, or forged.
		return verifyResponse{Authenticated: false}, true, nil
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return verifyResponse{}, false, fmt.Errorf("verify returned %s: %s", resp.Status, detail)
	}
}

func (c *Client) attachToken(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type errorResponse struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

// Login authenticates and caches the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out authResponse
	err := c.post(ctx, "/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return User{}, err
	}
	if err := c.cache.Save(State{Token: out.Token}); err != nil {
		return User{}, fmt.Errorf("persist session: %w", err)
	}
	c.setStatus(StatusAuthenticated)
	return out.User, nil
}

// Signup registers, which also logs the new user in.
func (c *Client) Signup(ctx context.Context, name, email, password string) (User, error) {
	var out authResponse
	err := c.post(ctx, "/signup", map[string]string{"name": name, "email": email, "password": password}, &out)
	if err != nil {
		return User{}, err
	}
	if err := c.cache.Save(State{Token: out.Token}); err != nil {
		return User{}, fmt.Errorf("persist session: %w", err)
	}
	c.setStatus(StatusAuthenticated)
	return out.User, nil
}

// Logout tells the server to expire the cookies and clears the local cache.
// Server errors are swallowed: locally forgetting the token is what ends the
// session, tokens being stateless.
func (c *Client) Logout(ctx context.Context) {
	state, _ := c.cache.Load()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logout", nil)
	if err == nil {
		if state.Token != "" {
			c.attachToken(req, state.Token)
		}
		if resp, err := c.http.Do(req); err != nil {
			c.logger.Warn("logout request failed", "error", err.Error())
		} else {
			_ = resp.Body.Close()
		}
	}

	if err := c.cache.Clear(); err != nil {
		c.logger.Warn("failed to clear session cache", "error", err.Error())
	}
	c.setStatus(StatusUnauthenticated)
}

// SendOTP asks the server to email a one-time password.
func (c *Client) SendOTP(ctx context.Context, email, name string) error {
	return c.post(ctx, "/send-otp", map[string]string{"email": email, "name": name}, nil)
}

// VerifyOTP submits a one-time password for verification.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	return c.post(ctx, "/verify-otp", map[string]string{"email": email, "otp": code}, nil)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var errBody errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			return fmt.Errorf("%s: %s (%d)", path, errBody.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s returned %s", path, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
