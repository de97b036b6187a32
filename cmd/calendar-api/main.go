package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/amazing-calendar/internal/config"
	"github.com/dimitrije/amazing-calendar/internal/database"
	"github.com/dimitrije/amazing-calendar/internal/dispatch"
	"github.com/dimitrije/amazing-calendar/internal/handlers"
	"github.com/dimitrije/amazing-calendar/internal/logger"
	"github.com/dimitrije/amazing-calendar/internal/metrics"
	"github.com/dimitrije/amazing-calendar/internal/middleware"
	"github.com/dimitrije/amazing-calendar/internal/notification/rpc"
	"github.com/dimitrije/amazing-calendar/internal/policy"
	"github.com/dimitrije/amazing-calendar/internal/services"
	"github.com/dimitrije/amazing-calendar/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.SetupDefault(os.Stdout, !cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rules, err := policy.FromConfig(cfg.Policy.Variant, cfg.Policy.Invite, cfg.Policy.Modify)
	if err != nil {
		log.Fatalf("Invalid authorization policy: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	queue, err := openQueue(cfg.Dispatch, appLogger)
	if err != nil {
		log.Fatalf("Failed to open dispatch queue: %v", err)
	}
	defer queue.Close()

	notificationClient, err := rpc.Dial(cfg.NotificationAddr)
	if err != nil {
		log.Fatalf("Failed to create notification client: %v", err)
	}
	defer notificationClient.Close()

	worker := dispatch.NewWorker(queue, notificationClient, collector, appLogger, dispatch.WorkerConfig{
		MaxAttempts: cfg.Dispatch.MaxAttempts,
		Timeout:     cfg.Dispatch.Timeout,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(ctx); err != nil {
			appLogger.Error("notification worker stopped", "error", err)
		}
	}()

	st := store.NewPostgresStore(db)
	dispatcher := dispatch.NewDispatcher(queue, collector, appLogger)
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	eventService := services.NewEventService(st, rules, dispatcher, appLogger)
	participationService := services.NewParticipationService(st, rules, dispatcher, appLogger)
	userService := services.NewUserService(st)

	router := handlers.Router{
		Events:       handlers.NewEventHandler(eventService, appLogger),
		Participants: handlers.NewParticipantHandler(participationService, appLogger),
		Users:        handlers.NewUserHandler(userService, appLogger),
		Tokens:       jwtService,
		Release:      cfg.IsProduction(),
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(registry))
	mux.Handle("/", router.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           middleware.RequestLog(appLogger, collector, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("server starting", "addr", srv.Addr, "policy", cfg.Policy.Variant)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", "error", err)
	}
	<-workerDone
}

// openQueue uses RabbitMQ when configured and an in-process buffer otherwise.
func openQueue(cfg config.DispatchConfig, logger *slog.Logger) (dispatch.Queue, error) {
	if cfg.RabbitMQURL == "" {
		return dispatch.NewMemoryQueue(cfg.BufferSize), nil
	}
	return dispatch.DialRabbit(cfg.RabbitMQURL, cfg.QueueName, logger)
}
