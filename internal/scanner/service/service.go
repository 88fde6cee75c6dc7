// Package service orchestrates URL checks: score through the classification
// service, persist the result, return the verdict.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"phishguard/internal/platform/metrics"
	"phishguard/internal/scanner/client"
	"phishguard/internal/scanner/models"
	"phishguard/internal/scanner/store"
	dErrors "phishguard/pkg/domain-errors"
	"phishguard/pkg/requestcontext"
	"phishguard/pkg/sentinel"
)

type Service struct {
	classifier client.Classifier
	records    store.RecordStore
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewService(classifier client.Classifier, records store.RecordStore, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{classifier: classifier, records: records, logger: logger, metrics: m}
}

// Check scores the URL and persists the verdict. A store failure after a
// successful score still fails the call; the verdict is not returned unless
// it was recorded.
func (s *Service) Check(ctx context.Context, url string) (*models.CheckResult, error) {
	if url == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "URL is required")
	}

	start := time.Now()
	verdict, err := s.classifier.Predict(ctx, url)
	if s.metrics != nil {
		s.metrics.ScannerLatencyMs.Observe(float64(time.Since(start).Milliseconds()))
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "url classification failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error processing URL")
	}

	rec := models.Record{
		ID:         uuid.New().String(),
		URL:        url,
		IsSafe:     verdict.IsSafe,
		Confidence: verdict.Confidence,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error processing URL")
	}

	if s.metrics != nil {
		s.metrics.URLsChecked.Inc()
	}
	return &models.CheckResult{URL: url, IsSafe: verdict.IsSafe, Confidence: verdict.Confidence}, nil
}

func (s *Service) List(ctx context.Context) ([]models.Record, error) {
	recs, err := s.records.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to load URL records")
	}
	return recs, nil
}

func (s *Service) Delete(ctx context.Context, id string) (models.Record, error) {
	rec, err := s.records.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Record{}, dErrors.New(dErrors.CodeNotFound, "URL record not found")
		}
		return models.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to delete URL record")
	}
	return rec, nil
}
