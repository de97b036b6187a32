package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimitrije/amazing-calendar/internal/config"
	"github.com/dimitrije/amazing-calendar/internal/logger"
	"github.com/dimitrije/amazing-calendar/internal/notification/server"
	"github.com/dimitrije/amazing-calendar/internal/notification/storage"
)

func main() {
	cfg := config.LoadNotificationService()
	appLogger := logger.SetupDefault(os.Stdout, false)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open notification store: %v", err)
	}
	defer store.Close()

	srv, err := server.Listen(cfg.Address, server.NewService(store, appLogger), appLogger)
	if err != nil {
		log.Fatalf("Failed to start notification service: %v", err)
	}

	if err := srv.Serve(ctx); err != nil {
		log.Fatalf("Notification service failed: %v", err)
	}
	appLogger.Info("notification service stopped")
}
