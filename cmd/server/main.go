package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finledger/internal/config"
	"finledger/internal/database"
	"finledger/internal/handlers"
	"finledger/internal/middleware"
	"finledger/internal/notify"
	"finledger/internal/repositories"
	"finledger/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, metrics, logger)
	accountService := services.NewAccountService(accountRepo, txnRepo, holdingRepo, metrics, logger)
	txnService := services.NewTransactionService(txnRepo, accountRepo, metrics, logger)
	holdingService := services.NewHoldingService(holdingRepo, accountRepo, metrics, logger)

	notifier := buildNotifier(cfg, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	accountHandler := handlers.NewAccountHandler(accountService)
	txnHandler := handlers.NewTransactionHandler(txnService)
	holdingHandler := handlers.NewHoldingHandler(holdingService)
	healthHandler := handlers.NewHealthCheckHandler(db)
	notificationHandler := handlers.NewNotificationHandler(notifier, metrics, logger)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))

	registerRoutes(e, tokenService, authHandler, accountHandler, txnHandler, holdingHandler, healthHandler, notificationHandler)

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("Starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}

func registerRoutes(
	e *echo.Echo,
	tokenService services.TokenServiceInterface,
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	txnHandler *handlers.TransactionHandler,
	holdingHandler *handlers.HoldingHandler,
	healthHandler *handlers.HealthCheckHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/test/notification", notificationHandler.TestNotification)

	authed := e.Group("", middleware.RequireAuth(tokenService))

	authed.POST("/accounts", accountHandler.Create)
	authed.GET("/accounts", accountHandler.List)
	authed.GET("/accounts/:account_id", accountHandler.Get)
	authed.PUT("/accounts/:account_id", accountHandler.Update)
	authed.DELETE("/accounts/:account_id", accountHandler.Delete)

	authed.POST("/transactions", txnHandler.Create)
	authed.GET("/transactions", txnHandler.List)
	authed.GET("/transactions/:txn_id", txnHandler.Get)
	authed.PUT("/transactions/:txn_id", txnHandler.Update)
	authed.DELETE("/transactions/:txn_id", txnHandler.Delete)

	authed.POST("/holdings", holdingHandler.Create)
	authed.GET("/holdings", holdingHandler.List)
	authed.GET("/holdings/:holdings_id", holdingHandler.Get)
	authed.PUT("/holdings/:holdings_id", holdingHandler.Update)
	authed.DELETE("/holdings/:holdings_id", holdingHandler.Delete)
}

// buildNotifier assembles the notification channels from configuration. With
// no channels configured, sends become no-ops.
func buildNotifier(cfg *config.Config, logger *slog.Logger) notify.Notifier {
	var channels []notify.Notifier

	if cfg.Notify.WebhookEnabled() {
		channels = append(channels, notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.WebhookTimeout))
		logger.Info("Webhook notifications enabled")
	}

	if cfg.Notify.EmailEnabled() {
		email, err := notify.NewEmailNotifier(
			cfg.Notify.SMTPHost,
			cfg.Notify.SMTPPort,
			cfg.Notify.SMTPUsername,
			cfg.Notify.SMTPPassword,
			cfg.Notify.EmailFrom,
			cfg.Notify.EmailTo,
		)
		if err != nil {
			logger.Error("Email notifier misconfigured", "error", err)
		} else {
			channels = append(channels, email)
			logger.Info("Email notifications enabled")
		}
	}

	if len(channels) == 0 {
		logger.Info("No notification channels configured")
		return notify.NewNoopNotifier()
	}

	return notify.NewMultiNotifier(logger, channels...)
}
