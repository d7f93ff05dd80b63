package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"cms-backend/config"
	"cms-backend/controllers"
	"cms-backend/metrics"
	"cms-backend/routes"
	"cms-backend/services"
	"cms-backend/telemetry"
	"cms-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found; continuing with environment variables")
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(settings.LogLevel, settings.LogDevelopment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	reporting, err := telemetry.Init(telemetry.Options{
		DSN:         settings.Sentry.DSN,
		Environment: settings.Sentry.Environment,
		Release:     "cms-backend",
	})
	if err != nil {
		logger.Warn("error reporting disabled", zap.Error(err))
	} else if reporting {
		logger.Info("error reporting enabled", zap.String("environment", settings.Sentry.Environment))
	}
	defer telemetry.Flush(2 * time.Second)

	if !settings.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	if settings.JWTSecretGenerated {
		logger.Warn("JWT_SECRET not set; using a random secret, sessions end on restart")
	}

	db, err := config.ConnectDatabase(settings, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	logger.Info("database ready", zap.String("driver", settings.DB.Driver))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		logger.Fatal("register metrics", zap.Error(err))
	}

	resources, err := services.NewRegistry(db)
	if err != nil {
		logger.Fatal("build resource registry", zap.Error(err))
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	identity := services.NewIdentityClient(settings.Identity.URL, settings.Identity.ServiceRoleKey, httpClient)
	mailer := utils.NewSMTPMailer(settings.Mail.Host, settings.Mail.Port, settings.Mail.User, settings.Mail.AppPassword, settings.Mail.FromName)
	if !identity.Configured() || !mailer.Configured() {
		logger.Warn("password reset disabled until identity provider and SMTP settings are provided")
	}

	siteName := settings.Mail.FromName
	resetSvc := services.NewResetService(identity, mailer, settings.SiteURL, siteName, logger)
	translator := services.NewTranslator(settings.TranslateURL, httpClient)
	analyticsSvc := services.NewAnalyticsService(db)
	submissionSvc := services.NewSubmissionService(db, services.NewGuard(services.DefaultCooldown), services.NewCaptchaStore(10*time.Minute), logger)
	settingsSvc := services.NewSettingsService(db)
	authSvc := services.NewAuthService(db, settings.JWTSecret, settings.JWTTTL)

	router := routes.SetupRouter(routes.Handlers{
		Resources: controllers.NewResourceController(resources),
		Reset:     controllers.NewResetController(resetSvc, m, logger),
		Translate: controllers.NewTranslateController(translator),
		Analytics: controllers.NewAnalyticsController(analyticsSvc),
		Forms:     controllers.NewFormController(submissionSvc, m, logger),
		Settings:  controllers.NewSettingsController(settingsSvc),
		Auth:      controllers.NewAuthController(authSvc),
		Media:     controllers.NewMediaController(services.NewMediaStore(settings.UploadDir, services.DefaultMaxUpload), "/uploads"),
	}, routes.Options{
		CORSOrigins: settings.CORSOrigins,
		Tokens:      authSvc,
		Log:         logger,
		Metrics:     m,
		Gatherer:    registry,
	})

	addr := ":" + settings.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
