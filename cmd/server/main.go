package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankteller/internal/config"
	"bankteller/internal/database"
	"bankteller/internal/handlers"
	"bankteller/internal/middleware"
	"bankteller/internal/repositories"
	"bankteller/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	accountRepo := repositories.NewAccountRepository(db.DB)
	ledgerRepo := repositories.NewLedgerRepository(db.DB)
	transferRepo := repositories.NewTransferRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)
	auditRepo := repositories.NewAuditLogRepository(db.DB)

	// Services
	metrics := services.NewPrometheusMetrics()
	pinService := services.NewPINService(cfg.Security.BCryptCost)
	tokenService := services.NewTokenService(&cfg.JWT)
	ledgerService := services.NewLedgerService(
		accountRepo, ledgerRepo, transferRepo, auditRepo,
		pinService, metrics, cfg.Bank, logger)
	authService := services.NewAuthService(
		accountRepo, auditRepo, blacklistedTokenRepo,
		pinService, tokenService, ledgerService, metrics, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(ledgerService, cfg.Bank)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomiddleware.Logger())

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	account := api.Group("/account")
	account.Use(middleware.RequireSession(tokenService, blacklistedTokenRepo))
	account.GET("", accountHandler.GetAccount)
	account.POST("/deposit", accountHandler.Deposit)
	account.POST("/withdraw", accountHandler.Withdraw)
	account.POST("/transfer", accountHandler.Transfer)
	account.GET("/history", accountHandler.History)

	if cfg.Server.Environment == "development" {
		demoData := services.NewDemoDataService(ledgerService, logger)
		devHandler := handlers.NewDevHandler(demoData)
		api.POST("/dev/seed-accounts", devHandler.SeedDemoAccounts)

		if cfg.Bank.SeedAccounts > 0 {
			if _, err := demoData.SeedAccounts(cfg.Bank.SeedAccounts); err != nil {
				logger.Warn("demo account seeding failed", "error", err)
			}
		}
	}

	// Expired blacklist rows only waste space once their tokens are dead
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.CleanupExpiredTokens(); err != nil {
				logger.Warn("blacklist cleanup failed", "error", err)
			}
		}
	}()

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
