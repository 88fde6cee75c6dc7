package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"phishguard/internal/scanner/handler/mocks"
	"phishguard/internal/scanner/models"
	dErrors "phishguard/pkg/domain-errors"
)

type ScannerHandlerSuite struct {
	suite.Suite
}

func TestScannerHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScannerHandlerSuite))
}

func (s *ScannerHandlerSuite) newHandler(t *testing.T) (*mocks.MockScannerService, *chi.Mux) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	mockService := mocks.NewMockScannerService(ctrl)
	h := New(mockService, logger)
	r := chi.NewRouter()
	h.Register(r)
	return mockService, r
}

func (s *ScannerHandlerSuite) do(t *testing.T, router *chi.Mux, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	raw, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	var body map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return rr, body
}

func (s *ScannerHandlerSuite) TestHandler_Check() {
	s.T().Run("returns the verdict - 200", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Check(gomock.Any(), "http://phish.example/login").
			Return(&models.CheckResult{URL: "http://phish.example/login", IsSafe: false, Confidence: 97.42}, nil)

		req := httptest.NewRequest(http.MethodPost, "/check-url",
			strings.NewReader(`{"url":"http://phish.example/login"}`))
		rr, body := s.do(t, router, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "http://phish.example/login", body["url"])
		assert.Equal(t, false, body["isSafe"])
		assert.InDelta(t, 97.42, body["confidence"].(float64), 0.001)
	})

	s.T().Run("returns 400 on malformed json", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Check(gomock.Any(), gomock.Any()).Times(0)

		req := httptest.NewRequest(http.MethodPost, "/check-url", strings.NewReader("{oops"))
		rr, body := s.do(t, router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, string(dErrors.CodeBadRequest), body["error"])
	})

	s.T().Run("returns 500 when the classification service fails", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Check(gomock.Any(), "https://example.com").
			Return(nil, dErrors.New(dErrors.CodeInternal, "Error processing URL"))

		req := httptest.NewRequest(http.MethodPost, "/check-url",
			strings.NewReader(`{"url":"https://example.com"}`))
		rr, body := s.do(t, router, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Error processing URL", body["message"])
	})
}

func (s *ScannerHandlerSuite) TestHandler_Collection() {
	s.T().Run("lists records - 200", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().List(gomock.Any()).Return([]models.Record{
			{ID: "rec-1", URL: "http://phish.example", IsSafe: false, Confidence: 99.9},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/urls", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var recs []models.Record
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recs))
		require.Len(t, recs, 1)
		assert.Equal(t, "rec-1", recs[0].ID)
	})

	s.T().Run("deletes a record - 200 with the deleted record", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Delete(gomock.Any(), "rec-1").
			Return(models.Record{ID: "rec-1", URL: "http://phish.example"}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/urls/rec-1", nil)
		rr, body := s.do(t, router, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "rec-1", body["id"])
	})

	s.T().Run("returns 404 for an unknown record", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Delete(gomock.Any(), "ghost").
			Return(models.Record{}, dErrors.New(dErrors.CodeNotFound, "URL record not found"))

		req := httptest.NewRequest(http.MethodDelete, "/urls/ghost", nil)
		rr, body := s.do(t, router, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "URL record not found", body["message"])
	})
}
