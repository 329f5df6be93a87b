package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sportsmatch/notification-service/internal/config"
	"github.com/sportsmatch/notification-service/internal/model"
	amqpDelivery "github.com/sportsmatch/notification-service/internal/modules/notification/delivery/amqp"
	notifRepo "github.com/sportsmatch/notification-service/internal/modules/notification/repository"
	notifService "github.com/sportsmatch/notification-service/internal/modules/notification/service"
	"github.com/sportsmatch/notification-service/internal/server"
	"github.com/sportsmatch/notification-service/pkg/database"
	"github.com/sportsmatch/notification-service/pkg/queue"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	setupLogging(cfg)

	slog.Info("starting notification service",
		"service", cfg.ServiceName,
		"port", cfg.Port,
		"friend_queue", cfg.FriendQueue,
		"lobby_queue", cfg.LobbyQueue,
		"log_level", cfg.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.AutoMigrate(&model.Notification{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	slog.Info("database connected", "db", cfg.DBName)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
	}

	broker := queue.NewClient(queue.Config{
		URL:            cfg.RabbitMQURL,
		Queues:         []string{cfg.FriendQueue, cfg.LobbyQueue},
		PrefetchCount:  cfg.PrefetchCount,
		ReconnectDelay: cfg.ReconnectDelay,
		MaxAttempts:    cfg.MaxReconnectAttempts,
	})
	// Startup is fatal when the retry budget runs out; the process must
	// not report itself ready without a broker.
	if err := broker.Connect(ctx); err != nil {
		log.Fatalf("broker connection failed: %v", err)
	}

	repo := notifRepo.NewNotificationRepository(db, cfg.HealthCheckTimeout)
	service := notifService.NewNotificationService(repo, redisClient)

	consumer := amqpDelivery.NewConsumer(broker, service, cfg.FriendQueue, cfg.LobbyQueue)
	consumerErr := make(chan error, 1)
	go func() {
		consumerErr <- consumer.Run(ctx)
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.NewServer(cfg, service, broker).Handler(),
	}
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- srv.ListenAndServe()
	}()
	slog.Info("notification service started", "addr", srv.Addr)

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-consumerErr:
		if err != nil {
			slog.Error("consumer stopped", "error", err)
		}
	case err := <-httpErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", "error", err)
		}
	}

	// Shutdown order: stop accepting HTTP, stop consuming, then close
	// broker and store connections.
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}
	if err := broker.Close(); err != nil {
		slog.Error("broker close failed", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close failed", "error", err)
		}
	}
	if err := database.Close(db); err != nil {
		slog.Error("database close failed", "error", err)
	}

	slog.Info("shutdown complete")
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With("service", cfg.ServiceName)
	slog.SetDefault(logger)
}
