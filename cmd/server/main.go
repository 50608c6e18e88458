package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"interviewscheduler/config"
	_ "interviewscheduler/docs"
	"interviewscheduler/internal/adapters/auth"
	"interviewscheduler/internal/adapters/email"
	"interviewscheduler/internal/adapters/spreadsheet"
	delivery "interviewscheduler/internal/delivery/http"
	"interviewscheduler/internal/delivery/http/controllers"
	"interviewscheduler/internal/delivery/http/middleware"
	"interviewscheduler/internal/metrics"
	"interviewscheduler/internal/repository/postgres"
	"interviewscheduler/internal/services"
)

// @title Interview Scheduler API
// @version 1.0
// @description Interview slot scheduling and booking service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(cfg.DBUrl); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}
	logger.Info("database ready")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKey,
			SecretAccessKey: cfg.SESSecretKey,
		},
	}, logger)

	repo := postgres.NewInterviewRepository(db)
	parser := spreadsheet.NewParser(cfg.ImportMaxBytes)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	interviewSvc := services.NewInterviewService(repo, parser, mailer, collector, logger, cfg.ContextTimeout)
	applicantSvc := services.NewApplicantService(repo, mailer, collector, logger, cfg.ContextTimeout)

	bookingLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:            rate.Limit(float64(cfg.BookingRatePerMin) / 60.0),
		Burst:           cfg.BookingRatePerMin,
		CleanupInterval: 5 * time.Minute,
	})
	defer bookingLimiter.Stop()

	router := delivery.NewRouter(&delivery.RouterDeps{
		Logger:              logger,
		Verifier:            verifier,
		InterviewController: controllers.NewInterviewController(logger, interviewSvc),
		ApplicantController: controllers.NewApplicantController(logger, applicantSvc),
		BookingLimiter:      bookingLimiter,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		HealthChecker:       db,
		AllowedOrigins:      cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
			os.Exit(1)
		}
	}
	logger.Info("server stopped")
}
