package config

import (
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration so main stays lean. Values come
// from the environment with development-safe defaults where that is harmless.
type Config struct {
	Addr string

	// Token signing. Session and admin tokens use distinct keys so a leaked
	// session key never mints admin credentials.
	SessionSigningKey string
	AdminSigningKey   string

	// Administrator identity. Admin elevation is a plain policy equality
	// against this pair, not a role flag on the credential record.
	AdminEmail    string
	AdminPassword string

	AllowedOrigins []string

	// SecureCookies marks the auth cookies Secure. SameSite=None requires it;
	// only plain-HTTP development setups turn it off.
	SecureCookies bool

	DatabaseURL string
	Redis       RedisConfig

	Mail    MailConfig
	Scanner ScannerConfig
	Audit   AuditConfig
}

// RedisConfig configures the optional Redis backing for the OTP ledger.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MailConfig configures the outbound mail provider.
type MailConfig struct {
	APIKey       string
	From         string
	ContactInbox string
}

// ScannerConfig points at the remote URL classification service.
type ScannerConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AuditConfig configures the optional Kafka audit sink.
type AuditConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	sessionKey := os.Getenv("JWT_SECRET")
	if sessionKey == "" {
		// Use a default for development - must be overridden in production.
		sessionKey = "dev-session-key-change-in-production"
	}
	adminKey := os.Getenv("ADMIN_SECRET")
	if adminKey == "" {
		adminKey = "dev-admin-key-change-in-production"
	}

	scannerURL := os.Getenv("SCANNER_URL")
	if scannerURL == "" {
		scannerURL = "http://127.0.0.1:5001"
	}

	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "phishguard.audit"
	}

	return Config{
		Addr:              addr,
		SessionSigningKey: sessionKey,
		AdminSigningKey:   adminKey,
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AllowedOrigins:    splitList(os.Getenv("ALLOWED_ORIGINS")),
		SecureCookies:     os.Getenv("COOKIE_SECURE") != "false",
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Mail: MailConfig{
			APIKey:       os.Getenv("RESEND_API_KEY"),
			From:         os.Getenv("MAIL_FROM"),
			ContactInbox: os.Getenv("CONTACT_INBOX"),
		},
		Scanner: ScannerConfig{
			BaseURL: scannerURL,
			Timeout: 15 * time.Second,
		},
		Audit: AuditConfig{
			Brokers: splitList(os.Getenv("AUDIT_BROKERS")),
			Topic:   topic,
		},
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
