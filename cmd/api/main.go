package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/medboard/hospital-api/pkg/logger"
	"github.com/medboard/hospital-api/pkg/metrics"
	"github.com/medboard/hospital-api/pkg/validator"
	"github.com/medboard/hospital-api/pkg/worker"

	"github.com/medboard/hospital-api/internal/config"
	"github.com/medboard/hospital-api/internal/email"
	appointmentHandler "github.com/medboard/hospital-api/internal/handler/appointment"
	authHandler "github.com/medboard/hospital-api/internal/handler/auth"
	billingHandler "github.com/medboard/hospital-api/internal/handler/billing"
	clinicianHandler "github.com/medboard/hospital-api/internal/handler/clinician"
	documentHandler "github.com/medboard/hospital-api/internal/handler/document"
	draftHandler "github.com/medboard/hospital-api/internal/handler/draft"
	hospitalHandler "github.com/medboard/hospital-api/internal/handler/hospital"
	notificationHandler "github.com/medboard/hospital-api/internal/handler/notification"
	patientHandler "github.com/medboard/hospital-api/internal/handler/patient"
	staffroleHandler "github.com/medboard/hospital-api/internal/handler/staffrole"
	templateHandler "github.com/medboard/hospital-api/internal/handler/template"
	"github.com/medboard/hospital-api/internal/overlay"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/server"
	appointmentService "github.com/medboard/hospital-api/internal/service/appointment"
	authService "github.com/medboard/hospital-api/internal/service/auth"
	billingService "github.com/medboard/hospital-api/internal/service/billing"
	documentService "github.com/medboard/hospital-api/internal/service/document"
	draftService "github.com/medboard/hospital-api/internal/service/draft"
	hospitalService "github.com/medboard/hospital-api/internal/service/hospital"
	notificationService "github.com/medboard/hospital-api/internal/service/notification"
	patientService "github.com/medboard/hospital-api/internal/service/patient"
	payrollService "github.com/medboard/hospital-api/internal/service/payroll"
	roleService "github.com/medboard/hospital-api/internal/service/role"
	staffService "github.com/medboard/hospital-api/internal/service/staff"
	templateService "github.com/medboard/hospital-api/internal/service/template"
	"github.com/medboard/hospital-api/internal/store"
)

func main() {
	appLogger := logger.NewLogger(nil)
	zl := appLogger.Zerolog()

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal(err, "failed to load configuration")
	}

	ov, err := newOverlay(cfg.Overlay)
	if err != nil {
		appLogger.Fatal(err, "failed to initialize durable overlay")
	}

	st := store.New()
	st.Seed()

	v := validator.New()
	m := metrics.NewMetrics("medboard", "api")
	ov = overlay.WithMetrics(ov, m)

	hospitalSvc := hospitalService.NewService(st, ov, v)
	patientSvc := patientService.NewService(st, ov, v)
	staffSvc := staffService.NewService(st, ov, v)
	roleSvc := roleService.NewService(st, v)
	appointmentSvc := appointmentService.NewService(st, v)
	templateSvc := templateService.NewService(st, v)
	documentSvc := documentService.NewService(st, v)
	notificationSvc := notificationService.NewService(st, m)
	billingSvc := billingService.NewService(st, templateSvc, notificationSvc, v, zl)
	payrollSvc := payrollService.NewService(st, ov, v, payrollService.Policy{
		MinTaxPercent: cfg.Payroll.MinTaxPercent,
		MaxTaxPercent: cfg.Payroll.MaxTaxPercent,
		MinTaxes:      cfg.Payroll.MinTaxes,
		MaxTaxes:      cfg.Payroll.MaxTaxes,
	})
	draftSvc := draftService.NewService(st, ov, staffSvc, documentSvc, v)
	authSvc := authService.NewService(staffSvc, authService.Config{
		Secret:      cfg.JWT.Secret,
		ExpiryHours: cfg.JWT.ExpiryHours,
	}, v)

	table := router.NewTable(
		router.WithLatency(router.LatencyConfig{Min: cfg.Latency.Min(), Max: cfg.Latency.Max()}),
		router.WithLogger(zl),
	)
	table.RegisterAll(
		authHandler.NewHandler(authSvc),
		hospitalHandler.NewHandler(hospitalSvc),
		patientHandler.NewHandler(patientSvc, documentSvc),
		clinicianHandler.NewHandler(staffSvc),
		staffroleHandler.NewHandler(roleSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		templateHandler.NewHandler(templateSvc),
		documentHandler.NewHandler(documentSvc),
		billingHandler.NewHandler(billingSvc, payrollSvc),
		draftHandler.NewHandler(draftSvc),
		notificationHandler.NewHandler(notificationSvc),
	)

	var sender email.Sender
	if cfg.SMTP.Enabled {
		sender = email.NewSender(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		sender = email.NewLogSender(zl)
	}

	processor := worker.NewOutboundProcessor(notificationSvc, sender, worker.OutboundProcessorConfig{
		BatchSize:    cfg.Outbound.BatchSize,
		PollInterval: time.Duration(cfg.Outbound.PollIntervalSeconds) * time.Second,
	}, appLogger)

	srv := server.New(server.Config{
		Port:         cfg.Server.Port,
		Timeout:      time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		RateLimit:    rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:    cfg.RateLimit.Burst,
		AllowOrigins: cfg.CORS.AllowOrigins,
	}, table, authSvc, m, zl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go processor.Start(ctx)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Fatal(err, "http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(err, "graceful shutdown failed")
	}
}

func newOverlay(cfg config.OverlayConfig) (overlay.Store, error) {
	switch cfg.Backend {
	case "redis":
		return overlay.NewRedisStore(overlay.RedisConfig{
			URL:       cfg.Redis.URL,
			Namespace: cfg.Redis.Namespace,
		})
	case "postgres":
		return overlay.NewPostgresStore(overlay.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Name:     cfg.Postgres.Name,
			SSLMode:  cfg.Postgres.SSLMode,
		})
	default:
		return overlay.NewFileStore(cfg.File.Path)
	}
}
