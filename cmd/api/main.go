package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ivstoyanov/rolodex/internal/config"
	"github.com/ivstoyanov/rolodex/internal/database"
	"github.com/ivstoyanov/rolodex/internal/geo"
	"github.com/ivstoyanov/rolodex/internal/handlers"
	middlewareCustom "github.com/ivstoyanov/rolodex/internal/middleware"
	"github.com/ivstoyanov/rolodex/internal/repositories"
	"github.com/ivstoyanov/rolodex/internal/routes"
	"github.com/ivstoyanov/rolodex/internal/services"
	pkglogger "github.com/ivstoyanov/rolodex/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(startupCtx, db); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		startupCancel()
		os.Exit(1)
	}

	accountRepo := repositories.NewAccountRepository(db)
	roleRepo := repositories.NewRoleRepository(db)

	if err := roleRepo.EnsureDefaultRoles(startupCtx, logger); err != nil {
		logger.Error("failed to seed roles", slog.Any("error", err))
		startupCancel()
		os.Exit(1)
	}
	startupCancel()

	auditLogger := pkglogger.NewAuditLogger(logger)

	var locator services.Locator = geo.NoopLocator{}
	if cfg.Geo.APIKey != "" {
		locator = geo.NewClient(cfg.Geo.BaseURL, cfg.Geo.APIKey, cfg.Geo.Timeout, logger)
	}

	var emailSender services.EmailSender
	if cfg.Email.FromAddress != "" {
		emailService, err := services.NewAWSSESEmailService(cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
		if err != nil {
			logger.Error("failed to initialize email service", slog.Any("error", err))
			os.Exit(1)
		}
		emailSender = emailService
	}

	credentialValidator := services.NewCredentialValidator(accountRepo, logger, auditLogger)
	projectionValidator := services.NewProjectionValidator()

	directoryService := services.NewDirectoryService(accountRepo, credentialValidator, projectionValidator, logger)
	accountService := services.NewAccountService(accountRepo, credentialValidator, logger, auditLogger)
	authService := services.NewAuthService(accountRepo, roleRepo, credentialValidator, projectionValidator, locator, emailSender, logger, auditLogger)

	homeHandler := handlers.NewHomeHandler(directoryService, accountService)
	authHandler := handlers.NewAuthHandler(authService)

	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders())
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, homeHandler, authHandler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
