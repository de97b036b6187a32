package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dimitrije/amazing-calendar/internal/config"
	"github.com/dimitrije/amazing-calendar/internal/database"
	"github.com/dimitrije/amazing-calendar/internal/services"
	"github.com/dimitrije/amazing-calendar/internal/store"
)

// create-user provisions a user and prints a bearer token for it.
func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: create-user <name> <email>")
		os.Exit(1)
	}

	name, email := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userService := services.NewUserService(store.NewPostgresStore(db))
	user, err := userService.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		user, err = userService.Create(ctx, name, email)
		if err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
	case err != nil:
		log.Fatalf("Failed to look up user: %v", err)
	default:
		fmt.Printf("User %s already exists (%s)\n", user.Email, user.ID)
	}

	token, err := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry).GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
