package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResendMailer sends mail through the Resend HTTP API.
type ResendMailer struct {
	apiKey       string
	from         string
	contactInbox string
	client       *http.Client
	baseURL      string
}

func NewResendMailer(apiKey, from, contactInbox string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key not set")
	}
	return &ResendMailer{
		apiKey:       apiKey,
		from:         from,
		contactInbox: contactInbox,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

func (m *ResendMailer) SendOTP(ctx context.Context, toEmail, name, code string) error {
	return m.send(ctx, sendRequest{
		From:    fmt.Sprintf("Support <%s>", m.from),
		To:      []string{toEmail},
		Subject: "Your Secure One-Time Password (OTP)",
		HTML: fmt.Sprintf(
			`<div><h2>Dear %s</h2><p>Your OTP: <strong>%s</strong></p><p>Valid for 5 minutes.</p></div>`,
			name, code,
		),
	})
}

func (m *ResendMailer) SendContactNotification(ctx context.Context, name, email, message string) error {
	return m.send(ctx, sendRequest{
		From:    m.from,
		To:      []string{m.contactInbox},
		Subject: "New Contact Form Submission",
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", name, email, message),
		ReplyTo: email,
	})
}

func (m *ResendMailer) send(ctx context.Context, body sendRequest) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail provider returned %s: %s", resp.Status, detail)
	}
	return nil
}
