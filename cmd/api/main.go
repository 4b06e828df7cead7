package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio-site-backend/config"
	v1 "studio-site-backend/internal/delivery/http/v1"
	"studio-site-backend/internal/domain"
	"studio-site-backend/internal/repository/memory"
	"studio-site-backend/internal/repository/postgres"
	"studio-site-backend/internal/usecase"
	"studio-site-backend/pkg/database"
	"studio-site-backend/pkg/email"
	"studio-site-backend/pkg/logger"
	"studio-site-backend/pkg/redisclient"
	"studio-site-backend/pkg/token"
	"studio-site-backend/pkg/upload"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Env)
	logger.Log.Info("Starting studio site backend", "port", cfg.Port, "backend", cfg.StorageBackend)

	// 3. Setup Repositories (pluggable backend)
	var (
		userRepo        domain.UserRepository
		contentRepo     domain.ContentRepository
		applicationRepo domain.ApplicationRepository
	)
	switch cfg.StorageBackend {
	case "memory":
		logger.Log.Warn("Using in-memory storage; all data is lost on restart")
		userRepo = memory.NewUserRepository()
		contentRepo = memory.NewContentRepository()
		applicationRepo = memory.NewApplicationRepository()
	default:
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		userRepo = postgres.NewUserRepository(dbPool)
		contentRepo = postgres.NewContentRepository(dbPool)
		applicationRepo = postgres.NewApplicationRepository(dbPool)
	}

	// 4. Setup Redis for rate limiting (optional, in-memory fallback)
	if err := redisclient.Initialize(redisclient.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiter uses in-memory store", "error", err)
	}
	defer redisclient.Close()

	// 5. Setup Upload Storage
	storage, err := upload.NewStorage(cfg.UploadDir)
	if err != nil {
		logger.Log.Error("Failed to prepare upload directory", "error", err)
		os.Exit(1)
	}

	// 6. Setup Email Notifications
	notifier := email.NewService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
		ToEmail:   cfg.NotifyEmailTo,
	})
	if !notifier.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - application notifications disabled")
	}

	// 7. Setup UseCases
	validate := validator.New()
	tokens := token.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiresDays)*24*time.Hour)
	authUC := usecase.NewAuthUsecase(userRepo, tokens, cfg.AdminSecretKey)
	contentUC := usecase.NewContentUsecase(contentRepo, storage)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, validate, notifier)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ContentUC:     contentUC,
		ApplicationUC: applicationUC,
		Tokens:        tokens,
		UploadDir:     storage.Dir(),
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
