// Package main initializes and starts the contactdesk API server, setting
// up configuration, logging, storage, repositories, services, handlers,
// and graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"contactdesk/internal/config"
	"contactdesk/internal/db"
	"contactdesk/internal/logger"
	"contactdesk/internal/repository"
	"contactdesk/internal/server/handler/http"
	"contactdesk/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	buildVersion := version
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	buildTimestamp := buildDate
	if buildTimestamp == "" {
		buildTimestamp = "N/A"
	}
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildTimestamp)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		userRepo        service.UserRepository
		tokenRepo       service.RefreshTokenRepository
		contactRepo     service.ContactRepository
		taskRepo        service.TaskRepository
		appointmentRepo service.AppointmentRepository
		projectRepo     service.ProjectRepository
	)

	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()

		// Drop expired and long-revoked refresh tokens in the background.
		db.StartExpiredTokenCleaner(ctx, postgresDB,
			time.Hour,       // interval
			30*24*time.Hour, // retention: 30 days
			zapLogger,
		)

		userRepo = repository.NewPostgresUserRepository(postgresDB)
		tokenRepo = repository.NewPostgresRefreshTokenRepository(postgresDB)
		contactRepo = repository.NewPostgresContactRepository(postgresDB)
		taskRepo = repository.NewPostgresTaskRepository(postgresDB)
		appointmentRepo = repository.NewPostgresAppointmentRepository(postgresDB)
		projectRepo = repository.NewPostgresProjectRepository(postgresDB)
	} else {
		// No DSN configured: fall back to in-memory stores.
		zapLogger.Warn("no database DSN configured, using in-memory storage")

		userRepo = repository.NewMemoryUserRepository()
		tokenRepo = repository.NewMemoryRefreshTokenRepository()
		contactRepo = repository.NewMemoryContactRepository()
		taskRepo = repository.NewMemoryTaskRepository()
		appointmentRepo = repository.NewMemoryAppointmentRepository()
		projectRepo = repository.NewMemoryProjectRepository()
	}

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, tokenRepo, options.JWTSecret)
	contactService := service.NewContactService(contactRepo)
	taskService := service.NewTaskService(taskRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo)
	projectService := service.NewProjectService(projectRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	contactHandler := &http.ContactHandler{ContactService: contactService, Log: zapLogger}
	taskHandler := &http.TaskHandler{TaskService: taskService, Log: zapLogger}
	appointmentHandler := &http.AppointmentHandler{AppointmentService: appointmentService, Log: zapLogger}
	projectHandler := &http.ProjectHandler{ProjectService: projectService, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, contactHandler, taskHandler, appointmentHandler, projectHandler, options.JWTSecret, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	zapLogger.Info("server stopped")
}
