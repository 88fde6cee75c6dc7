package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"phishguard/internal/scanner/models"
)

type ClientSuite struct {
	suite.Suite
	ctx context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupSuite() {
	s.ctx = context.Background()
}

func (s *ClientSuite) TestPredict() {
	s.Run("posts the url and decodes the verdict", func() {
		var gotPath string
		var gotReq models.CheckRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&gotReq))
			s.Require().NoError(json.NewEncoder(w).Encode(models.Verdict{IsSafe: false, Confidence: 97.42}))
		}))
		defer srv.Close()

		verdict, err := New(srv.URL).Predict(s.ctx, "http://phish.example/login")

		s.Require().NoError(err)
		s.Equal("/predict", gotPath)
		s.Equal("http://phish.example/login", gotReq.URL)
		s.False(verdict.IsSafe)
		s.InDelta(97.42, verdict.Confidence, 0.001)
	})

	s.Run("non-200 is an error carrying the response detail", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"No URL provided"}`, http.StatusBadRequest)
		}))
		defer srv.Close()

		_, err := New(srv.URL).Predict(s.ctx, "")

		s.Require().Error(err)
		s.Contains(err.Error(), "400")
		s.Contains(err.Error(), "No URL provided")
	})

	s.Run("unreachable service is an error", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		_, err := New(srv.URL).Predict(s.ctx, "http://example.com")

		s.Error(err)
	})

	s.Run("canceled context aborts the call", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		_, err := New(srv.URL).Predict(ctx, "http://example.com")

		s.Error(err)
	})
}
