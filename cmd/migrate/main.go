package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"fmt"
	"log"

	"dinewise-backend/internal/shared/config"
	"dinewise-backend/internal/shared/storage/db"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("migrations applied")
}

func run() error {
	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
