package sessionclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ClientSuite struct {
	suite.Suite
	ctx    context.Context
	logger *slog.Logger
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// fastRetry keeps test retries quick.
func fastRetry() Option {
	return WithRetryPolicy(3, 5*time.Millisecond)
}

func (s *ClientSuite) verifyOKServer(isAdmin bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/auth", r.URL.Path)
		_ = json.NewEncoder(w).Encode(verifyResponse{
			Authenticated: true,
			User:          User{ID: "user-1", Name: "Ada", Email: "ada@example.com"},
			IsAdmin:       isAdmin,
		})
	}))
}

func (s *ClientSuite) TestVerifyAuth() {
	s.Run("no cached token is immediately unauthenticated", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			s.Fail("server must not be called without a token")
		}))
		defer srv.Close()

		c := New(srv.URL, NewMemoryStore(), s.logger, fastRetry())
		session, err := c.VerifyAuth(s.ctx)

		s.Require().NoError(err)
		s.Equal(StatusUnauthenticated, session.Status)
		s.Equal(StatusUnauthenticated, c.Status())
	})

	s.Run("adopts server truth and persists isAdmin", func() {
		srv := s.verifyOKServer(true)
		defer srv.Close()

		cache := NewMemoryStore()
		s.Require().NoError(cache.Save(State{Token: "cached-token", IsAdmin: false}))

		c := New(srv.URL, cache, s.logger, fastRetry())
		session, err := c.VerifyAuth(s.ctx)

		s.Require().NoError(err)
		s.Equal(StatusAuthenticated, session.Status)
		s.True(session.IsAdmin)
		s.False(session.FromCache)
		s.Equal("ada@example.com", session.User.Email)

		persisted, err := cache.Load()
		s.Require().NoError(err)
		s.True(persisted.IsAdmin)
		s.Equal("cached-token", persisted.Token)
	})

	s.Run("sends the token as both bearer header and cookie", func() {
		var gotAuth string
		var gotCookie string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			if c, err := r.Cookie(sessionCookie); err == nil {
				gotCookie = c.Value
			}
			_ = json.NewEncoder(w).Encode(verifyResponse{Authenticated: true})
		}))
		defer srv.Close()

		cache := NewMemoryStore()
		s.Require().NoError(cache.Save(State{Token: "tok-123"}))

		_, err := New(srv.URL, cache, s.logger, fastRetry()).VerifyAuth(s.ctx)

		s.Require().NoError(err)
		s.Equal("Bearer tok-123", gotAuth)
		s.Equal("tok-123", gotCookie)
	})

	s.Run("a 403 verdict is definitive and clears the cache", func() {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"forbidden","message":"Invalid or expired token"}`))
		}))
		defer srv.Close()

		cache := NewMemoryStore()
		s.Require().NoError(cache.Save(State{Token: "stale-token", IsAdmin: true}))

		c := New(srv.URL, cache, s.logger, fastRetry())
		session, err := c.VerifyAuth(s.ctx)

		s.Require().NoError(err)
		s.Equal(StatusUnauthenticated, session.Status)
		s.EqualValues(1, calls.Load())

		cleared, err := cache.Load()
		s.Require().NoError(err)
		s.Empty(cleared.Token)
	})

	s.Run("retries transport failures then falls back to the cache", func() {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		cache := NewMemoryStore()
		s.Require().NoError(cache.Save(State{Token: "cached-token", IsAdmin: true}))

		c := New(srv.URL, cache, s.logger, fastRetry())
		session, err := c.VerifyAuth(s.ctx)

		s.Require().NoError(err)
		s.Equal(StatusAuthenticated, session.Status)
		s.True(session.IsAdmin)
		s.True(session.FromCache)
		s.EqualValues(3, calls.Load())
	})

	s.Run("recovers when a later attempt succeeds", func() {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_ = json.NewEncoder(w).Encode(verifyResponse{Authenticated: true, IsAdmin: false})
		}))
		defer srv.Close()

		cache := NewMemoryStore()
		s.Require().NoError(cache.Save(State{Token: "cached-token", IsAdmin: true}))

		c := New(srv.URL, cache, s.logger, fastRetry())
		session, err := c.VerifyAuth(s.ctx)

		s.Require().NoError(err)
		s.Equal(StatusAuthenticated, session.Status)
		s.False(session.FromCache)
		s.False(session.IsAdmin)
		s.EqualValues(3, calls.Load())
	})

	s.Run("cancellation aborts the retry wait", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		cache := NewMemoryStore()
		s.Require().NoError(cache.Save(State{Token: "cached-token"}))

		c := New(srv.URL, cache, s.logger, WithRetryPolicy(3, time.Minute))
		ctx, cancel := context.WithCancel(s.ctx)
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		start := time.Now()
		_, err := c.VerifyAuth(ctx)

		s.ErrorIs(err, context.Canceled)
		s.Less(time.Since(start), 5*time.Second)
	})

	s.Run("status stays unknown before the first verification", func() {
		c := New("http://localhost:0", NewMemoryStore(), s.logger, fastRetry())
		s.Equal(StatusUnknown, c.Status())
	})
}

func (s *ClientSuite) TestAuthFlows() {
	s.Run("login caches the returned token", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.Equal("/login", r.URL.Path)
			_ = json.NewEncoder(w).Encode(authResponse{
				Message: "Login successful",
				Token:   "fresh-token",
				User:    User{ID: "user-1", Email: "ada@example.com"},
			})
		}))
		defer srv.Close()

		cache := NewMemoryStore()
		c := New(srv.URL, cache, s.logger, fastRetry())
		_, err := c.Login(s.ctx, "ada@example.com", "correct-horse")

		s.Require().NoError(err)
		state, _ := cache.Load()
		s.Equal("fresh-token", state.Token)
		s.Equal(StatusAuthenticated, c.Status())
	})

	s.Run("login surfaces the server's error message", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized","message":"Invalid credentials"}`))
		}))
		defer srv.Close()

		cache := NewMemoryStore()
		_, err := New(srv.URL, cache, s.logger, fastRetry()).Login(s.ctx, "ada@example.com", "wrong")

		s.Require().Error(err)
		s.Contains(err.Error(), "Invalid credentials")
		state, _ := cache.Load()
		s.Empty(state.Token)
	})

	s.Run("logout clears the cache even when the server is down", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		cache := NewMemoryStore()
		s.Require().NoError(cache.Save(State{Token: "cached-token", IsAdmin: true}))

		c := New(srv.URL, cache, s.logger, fastRetry())
		c.Logout(s.ctx)

		state, _ := cache.Load()
		s.Empty(state.Token)
		s.False(state.IsAdmin)
		s.Equal(StatusUnauthenticated, c.Status())
	})

	s.Run("otp round trip", func() {
		var paths []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}))
		defer srv.Close()

		c := New(srv.URL, NewMemoryStore(), s.logger, fastRetry())
		s.Require().NoError(c.SendOTP(s.ctx, "ada@example.com", "Ada"))
		s.Require().NoError(c.VerifyOTP(s.ctx, "ada@example.com", "123456"))
		s.Equal([]string{"/send-otp", "/verify-otp"}, paths)
	})
}

func (s *ClientSuite) TestFileStore() {
	s.Run("round trips state through disk", func() {
		path := filepath.Join(s.T().TempDir(), "session.json")
		store := NewFileStore(path)

		state, err := store.Load()
		s.Require().NoError(err)
		s.Empty(state.Token)

		s.Require().NoError(store.Save(State{Token: "tok", IsAdmin: true}))
		state, err = store.Load()
		s.Require().NoError(err)
		s.Equal("tok", state.Token)
		s.True(state.IsAdmin)

		s.Require().NoError(store.Clear())
		state, err = store.Load()
		s.Require().NoError(err)
		s.Empty(state.Token)
	})
}

func (s *ClientSuite) TestWatchCache() {
	s.Run("reports external cache changes", func() {
		cache := NewMemoryStore()
		s.Require().NoError(cache.Save(State{Token: "tok-1"}))

		c := New("http://localhost:0", cache, s.logger, fastRetry())
		changes := make(chan State, 1)

		ctx, cancel := context.WithCancel(s.ctx)
		defer cancel()
		go func() {
			_ = c.WatchCache(ctx, time.Millisecond, func(state State) {
				select {
				case changes <- state:
				default:
				}
			})
		}()

		// Another "tab" logs out.
		time.Sleep(5 * time.Millisecond)
		s.Require().NoError(cache.Clear())

		select {
		case state := <-changes:
			s.Empty(state.Token)
			s.Equal(StatusUnauthenticated, c.Status())
		case <-time.After(2 * time.Second):
			s.Fail("watcher never reported the change")
		}
	})
}
