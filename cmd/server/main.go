package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"phishguard/internal/audit"
	authhandler "phishguard/internal/auth/handler"
	authservice "phishguard/internal/auth/service"
	authstore "phishguard/internal/auth/store"
	contacthandler "phishguard/internal/contact/handler"
	contactservice "phishguard/internal/contact/service"
	contactstore "phishguard/internal/contact/store"
	"phishguard/internal/mail"
	"phishguard/internal/otp"
	"phishguard/internal/platform/config"
	"phishguard/internal/platform/httpserver"
	"phishguard/internal/platform/logger"
	"phishguard/internal/platform/metrics"
	"phishguard/internal/platform/middleware"
	"phishguard/internal/platform/postgres"
	platformredis "phishguard/internal/platform/redis"
	scannerclient "phishguard/internal/scanner/client"
	scannerhandler "phishguard/internal/scanner/handler"
	scannerservice "phishguard/internal/scanner/service"
	scannerstore "phishguard/internal/scanner/store"
	"phishguard/internal/token"
	httptransport "phishguard/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Postgres, Redis and
// Kafka are all optional: absent configuration falls back to in-process
// equivalents so a bare `go run` serves a working stack.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	pool, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err.Error())
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	rdb, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	var users authstore.UserStore = authstore.NewInMemoryUserStore()
	var messages contactstore.MessageStore = contactstore.NewInMemoryMessageStore()
	var records scannerstore.RecordStore = scannerstore.NewInMemoryRecordStore()
	if pool != nil {
		users = authstore.NewPostgresUserStore(pool)
		messages = contactstore.NewPostgresMessageStore(pool)
		records = scannerstore.NewPostgresRecordStore(pool)
	}

	var ledger otp.Ledger = otp.NewMemoryLedger()
	if rdb != nil {
		ledger = otp.NewRedisLedger(rdb.Client)
	}

	var mailer mail.Mailer = mail.NewLogMailer(log)
	if cfg.Mail.APIKey != "" {
		resend, err := mail.NewResendMailer(cfg.Mail.APIKey, cfg.Mail.From, cfg.Mail.ContactInbox)
		if err != nil {
			log.Error("mail provider setup failed", "error", err.Error())
			os.Exit(1)
		}
		mailer = resend
	}

	var sink audit.Sink = audit.NewMemorySink()
	if len(cfg.Audit.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.Audit.Brokers, cfg.Audit.Topic)
		if err != nil {
			log.Error("audit sink setup failed", "error", err.Error())
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	}
	auditPub := audit.NewPublisher(0, log, m)
	auditWorker := audit.NewWorker(sink, auditPub.Inbox(), log)

	issuer := token.NewIssuer(cfg.SessionSigningKey, cfg.AdminSigningKey)
	otpSvc := otp.NewService(ledger, mailer, log, m)
	authSvc := authservice.NewService(users, issuer, otpSvc, auditPub, log, m, authservice.AdminCredentials{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	contactSvc := contactservice.NewService(messages, mailer, log)
	scannerSvc := scannerservice.NewService(scannerclient.New(cfg.Scanner.BaseURL), records, log, m)

	guard := middleware.RequireAuth(httptransport.SessionValidator{Issuer: issuer}, log)
	router := httptransport.NewRouter(httptransport.Handlers{
		Auth:    authhandler.New(authSvc, guard, log, cfg.SecureCookies),
		Contact: contacthandler.New(contactSvc, log),
		Scanner: scannerhandler.New(scannerSvc, log),
	}, log, cfg.AllowedOrigins)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return auditWorker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting phishguard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("shutdown complete", slog.String("addr", cfg.Addr))
}
