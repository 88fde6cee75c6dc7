package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"phishguard/internal/audit"
	authhandler "phishguard/internal/auth/handler"
	authservice "phishguard/internal/auth/service"
	authstore "phishguard/internal/auth/store"
	contacthandler "phishguard/internal/contact/handler"
	contactservice "phishguard/internal/contact/service"
	contactstore "phishguard/internal/contact/store"
	"phishguard/internal/mail"
	"phishguard/internal/otp"
	"phishguard/internal/platform/middleware"
	scannerhandler "phishguard/internal/scanner/handler"
	scannermodels "phishguard/internal/scanner/models"
	scannerservice "phishguard/internal/scanner/service"
	scannerstore "phishguard/internal/scanner/store"
	"phishguard/internal/token"
	"phishguard/pkg/testutil"
)

// RouterSuite exercises the fully composed router with real services on
// in-memory stores.
type RouterSuite struct {
	suite.Suite
	router http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

type staticClassifier struct{}

func (staticClassifier) Predict(_ context.Context, _ string) (scannermodels.Verdict, error) {
	return scannermodels.Verdict{IsSafe: true, Confidence: 75.0}, nil
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	mailer := mail.NewLogMailer(logger)
	issuer := token.NewIssuer("router-session-key", "router-admin-key")
	auditPub := audit.NewPublisher(16, logger, nil)

	otpSvc := otp.NewService(otp.NewMemoryLedger(), mailer, logger, nil)
	authSvc := authservice.NewService(
		authstore.NewInMemoryUserStore(), issuer, otpSvc, auditPub, logger, nil,
		authservice.AdminCredentials{},
	)
	contactSvc := contactservice.NewService(contactstore.NewInMemoryMessageStore(), mailer, logger)
	scannerSvc := scannerservice.NewService(staticClassifier{}, scannerstore.NewInMemoryRecordStore(), logger, nil)

	guard := middleware.RequireAuth(SessionValidator{Issuer: issuer}, logger)
	s.router = NewRouter(Handlers{
		Auth:    authhandler.New(authSvc, guard, logger, true),
		Contact: contacthandler.New(contactSvc, logger),
		Scanner: scannerhandler.New(scannerSvc, logger),
	}, logger, []string{"https://app.example.com"})
}

func (s *RouterSuite) TestHealthz() {
	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Equal("ok", rr.Body.String())
}

func (s *RouterSuite) TestMetricsEndpoint() {
	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.NotEmpty(rr.Body.String())
}

func (s *RouterSuite) TestRequestIDHeader() {
	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	s.NotEmpty(rr.Header().Get("X-Request-Id"))
}

func (s *RouterSuite) TestCORS() {
	s.Run("allowed origin is echoed with credentials", func() {
		req := httptest.NewRequest(http.MethodOptions, "/login", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusNoContent, rr.Code)
		s.Equal("https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
		s.Equal("true", rr.Header().Get("Access-Control-Allow-Credentials"))
	})

	s.Run("unknown origin gets no CORS headers", func() {
		req := httptest.NewRequest(http.MethodOptions, "/login", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := testutil.DoRequest(s.router, req)

		s.Empty(rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

// TestSignupThenVerify walks a whole session through the composed stack: the
// signup response sets a cookie a subsequent verification accepts.
func (s *RouterSuite) TestSignupThenVerify() {
	signup := testutil.NewJSONRequest(s.T(), http.MethodPost, "/signup", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	rr := testutil.DoRequest(s.router, signup)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	testutil.AssertJSONContains(s.T(), rr, "message", "User created and logged in successfully")

	cookies := rr.Result().Cookies()
	s.Require().NotEmpty(cookies)

	verify := httptest.NewRequest(http.MethodGet, "/auth", nil)
	for _, c := range cookies {
		verify.AddCookie(c)
	}
	rr = testutil.DoRequest(s.router, verify)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	testutil.AssertJSONContains(s.T(), rr, "authenticated", true)
	testutil.AssertJSONContains(s.T(), rr, "isAdmin", false)
}

func (s *RouterSuite) TestVerifyWithoutToken() {
	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/auth", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	testutil.AssertJSONContains(s.T(), rr, "message", "Unauthorized")
}

func (s *RouterSuite) TestURLCheckUnderAPI() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/check-url",
		map[string]string{"url": "https://example.com"}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	testutil.AssertJSONContains(s.T(), rr, "isSafe", true)
	testutil.AssertJSONContains(s.T(), rr, "confidence", 75.0)
}

func (s *RouterSuite) TestContactUnderRoot() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/send",
		map[string]string{"name": "Ada", "email": "ada@example.com", "message": "hi"}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	testutil.AssertJSONContains(s.T(), rr, "message", "Message sent successfully!")
}
