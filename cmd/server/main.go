package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/backend"
	"github.com/yourorg/matchup-bff/internal/config"
	"github.com/yourorg/matchup-bff/internal/handler"
	"github.com/yourorg/matchup-bff/internal/middleware"
	"github.com/yourorg/matchup-bff/internal/notify"
	"github.com/yourorg/matchup-bff/internal/payment"
	"github.com/yourorg/matchup-bff/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Create the backend client and wait for the platform API to be reachable
	backendClient := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
	backendClient.SetPaymentPaths(cfg.Payment.PrimaryBasePath, cfg.Payment.FallbackBasePath)

	if err := waitForBackend(backendClient, logger); err != nil {
		logger.Warn("Backend not reachable at startup, continuing anyway", zap.Error(err))
	}

	// Initialize Redis-backed session store (if enabled)
	var sessionStore *session.Store
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Failed to connect to Redis, running without session store", zap.Error(err))
		} else {
			logger.Info("Connected to Redis", zap.String("address", cfg.Redis.Addr))
			sessionStore = session.New(redisClient, cfg.Redis.SessionTTL, logger)
		}
	}

	// Create flow components
	dispatcher := notify.NewDispatcher(backendClient, logger)
	paymentCfg := payment.Config{
		Currency:         cfg.Payment.Currency,
		DefaultOrderName: cfg.Payment.DefaultOrderName,
		SuccessURL:       cfg.Payment.SuccessURL,
		FailURL:          cfg.Payment.FailURL,
		ConfirmTimeout:   cfg.Payment.ConfirmTimeout,
		SuccessDelay:     cfg.Payment.SuccessDelay,
	}

	// Create handlers
	authHandler := handler.NewAuthHandler(backendClient, sessionStore, logger)
	memberHandler := handler.NewMemberHandler(backendClient, logger)
	notificationHandler := handler.NewNotificationHandler(backendClient, dispatcher, logger)
	projectHandler := handler.NewProjectHandler(backendClient, sessionStore, logger)
	paymentHandler := handler.NewPaymentHandler(backendClient, paymentCfg, logger)

	router := setupRouter(
		authHandler,
		memberHandler,
		notificationHandler,
		projectHandler,
		paymentHandler,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

// waitForBackend pings the platform API with exponential backoff so a cold
// deploy does not race the backend coming up
func waitForBackend(client *backend.Client, logger *zap.Logger) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := client.Ping(ctx); err != nil {
			logger.Debug("Backend not ready yet", zap.Error(err))
			return err
		}
		return nil
	}, policy)
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func setupRouter(
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	notificationHandler *handler.NotificationHandler,
	projectHandler *handler.ProjectHandler,
	paymentHandler *handler.PaymentHandler,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
	}

	authorized := router.Group("/api/v1")
	authorized.Use(middleware.Auth(logger))
	{
		authorized.GET("/home", memberHandler.HomeFeed)
		authorized.GET("/chats/rooms", memberHandler.ChatRooms)

		authorized.GET("/members/me", memberHandler.Me)
		authorized.PUT("/members/me", memberHandler.UpdateMe)
		authorized.GET("/members/me/projects", handler.MyProjects)
		authorized.GET("/partners/:id", memberHandler.Partner)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/click", notificationHandler.Click)
		authorized.POST("/invitations/:id/accept", notificationHandler.AcceptInvitation)

		authorized.POST("/projects/estimate", projectHandler.Estimate)
		authorized.POST("/projects/confirm", projectHandler.Confirm)
		authorized.GET("/members/me/last-project", projectHandler.LastViewed)
		authorized.GET("/projects/:id", projectHandler.Get)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.POST("/projects/:id/close", projectHandler.Close)
		authorized.POST("/projects/:id/reopen", projectHandler.Reopen)
		authorized.POST("/projects/:id/tasks", projectHandler.CreateTask)
		authorized.PUT("/projects/:id/tasks/:taskId", projectHandler.UpdateTask)
		authorized.DELETE("/projects/:id/tasks/:taskId", projectHandler.DeleteTask)

		authorized.POST("/payments/start", paymentHandler.Start)
		authorized.GET("/payments/confirm", paymentHandler.ConfirmReturn)
		authorized.GET("/payments/history", handler.PaymentHistory)
	}

	return router
}
