// Package client talks to the URL classification service. The scoring model
// behind it is opaque; this is a plain HTTP round trip.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"phishguard/internal/scanner/models"
)

// Classifier scores a URL. Implemented by Client; tests substitute fakes.
type Classifier interface {
	Predict(ctx context.Context, url string) (models.Verdict, error)
}

// Client calls the classification service's /predict endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Predict(ctx context.Context, url string) (models.Verdict, error) {
	b, err := json.Marshal(models.CheckRequest{URL: url})
	if err != nil {
		return models.Verdict{}, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(b))
	if err != nil {
		return models.Verdict{}, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Verdict{}, fmt.Errorf("call classification service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return models.Verdict{}, fmt.Errorf("classification service returned %s: %s", resp.Status, detail)
	}

	var verdict models.Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return models.Verdict{}, fmt.Errorf("decode verdict: %w", err)
	}
	return verdict, nil
}
