package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"eventures/api/routes"
	"eventures/internal/notifications"
	"eventures/internal/shared/config"
	"eventures/internal/shared/database"
	"eventures/pkg/logger"
	"eventures/pkg/ratelimit"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()

	// set before the logger so it picks the right handler
	gin.SetMode(cfg.GinMode)
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing databases", slog.Any("error", err))
		}
	}()

	// Rate limiting needs Redis
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:          cfg.RateLimit.Enabled,
			WindowDuration:   cfg.RateLimit.WindowDuration,
			DefaultRequests:  cfg.RateLimit.DefaultRequests,
			PublicRequests:   cfg.RateLimit.PublicRequests,
			AuthRequests:     cfg.RateLimit.AuthRequests,
			DraftRequests:    cfg.RateLimit.DraftRequests,
			CheckoutRequests: cfg.RateLimit.CheckoutRequests,
			AdminRequests:    cfg.RateLimit.AdminRequests,
			HealthRequests:   cfg.RateLimit.HealthRequests,
			WhitelistedIPs:   cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
			slog.Int("checkout_requests", cfg.RateLimit.CheckoutRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Booking notifications
	notificationCtx, notificationCancel := context.WithCancel(context.Background())
	defer notificationCancel()

	var publisher notifications.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := notifications.NewKafkaPublisher(
			notifications.DefaultProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.BookingTopic),
		)
		if err != nil {
			appLogger.Error("Failed to initialize notification publisher", slog.Any("error", err))
			appLogger.Info("Continuing without notifications")
		} else {
			publisher = kafkaPublisher
			defer func() {
				if err := kafkaPublisher.Close(); err != nil {
					appLogger.Error("Error closing notification publisher", slog.Any("error", err))
				}
			}()
		}

		consumer, err := notifications.NewConsumer(
			notifications.DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, cfg.Kafka.BookingTopic),
			notifications.NewLogHandler(appLogger),
		)
		if err != nil {
			appLogger.Error("Failed to initialize notification consumer", slog.Any("error", err))
		} else {
			consumer.Start(notificationCtx, cfg.Kafka.Workers)
			appLogger.Info("Notification consumer started",
				slog.String("topic", cfg.Kafka.BookingTopic),
				slog.Int("workers", cfg.Kafka.Workers),
			)
			defer func() {
				appLogger.Info("Stopping notification consumer...")
				if err := consumer.Stop(); err != nil {
					appLogger.Error("Error stopping notification consumer", slog.Any("error", err))
				}
			}()
		}
	} else {
		appLogger.Info("Kafka disabled, booking notifications are dropped")
	}

	router := setupRouter(cfg, db, publisher, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", Version),
			slog.String("build_time", BuildTime),
			slog.String("commit", GitCommit),
			slog.Bool("redis", db.Redis != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
			slog.Bool("notifications", publisher != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	routes.NewRouter(cfg, db, publisher).SetupRoutes(engine)

	return engine
}

// RequestLoggerMiddleware tags each request with an X-Request-ID and logs it on completion
func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		reqLogger := l.WithRequestID(requestID)

		c.Next()

		if err := c.Errors.Last(); err != nil {
			reqLogger.LogHTTPError(c, err, c.Writer.Status())
		}
		reqLogger.LogHTTPRequest(c, time.Since(start))
	}
}
