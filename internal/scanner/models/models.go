package models

import "time"

// Record is a stored classification result.
type Record struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	IsSafe     bool      `json:"isSafe"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CheckRequest is the classification request payload.
type CheckRequest struct {
	URL string `json:"url"`
}

// Verdict is what the classification service returns for a URL. Confidence
// is a percentage, already rounded by the remote service.
type Verdict struct {
	IsSafe     bool    `json:"isSafe"`
	Confidence float64 `json:"confidence"`
}

// CheckResult is the verdict echoed back with the checked URL.
type CheckResult struct {
	URL        string  `json:"url"`
	IsSafe     bool    `json:"isSafe"`
	Confidence float64 `json:"confidence"`
}
