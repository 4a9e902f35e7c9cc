package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/markitup/markitup-api/docs" // Swagger docs (generated)
	"github.com/markitup/markitup-api/internal/auth"
	"github.com/markitup/markitup-api/internal/config"
	"github.com/markitup/markitup-api/internal/database"
	httpServer "github.com/markitup/markitup-api/internal/http"
	"github.com/markitup/markitup-api/internal/logging"
	"github.com/markitup/markitup-api/internal/settings"
	"github.com/markitup/markitup-api/internal/user"
)

// @title           MarkItUp Auth API
// @version         1.0
// @description     User authentication backend: signup, login, identity resolution and per-user settings.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	ctx := context.Background()

	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("failed to initialize mongo: %w", err)
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			logger.Warn("failed to disconnect mongo", "error", err.Error())
		}
	}()

	// Repositories
	userRepo := user.NewRepository(db)
	settingsRepo := settings.NewRepository(db)

	// Core services, explicitly constructed and injected
	hasher := auth.NewPasswordHasher()
	tokenService, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenDuration)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	authService, err := auth.NewService(userRepo, hasher, tokenService, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}

	// HTTP handlers
	authHandler := auth.NewHandler(authService, logger)
	settingsHandler := settings.NewHandler(settingsRepo, logger)
	authMiddleware := auth.NewMiddleware(tokenService)

	router := httpServer.NewRouter(cfg, authHandler, settingsHandler, authMiddleware, logger)

	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
