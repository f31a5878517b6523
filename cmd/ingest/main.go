package main

// Load a cleaned restaurant CSV into the catalog:
//   go run ./cmd/ingest -file data/restaurants.csv

import (
	"context"
	"flag"
	"log"
	"os"

	"dinewise-backend/internal/bootstrap"
	"dinewise-backend/internal/ingest"
	"dinewise-backend/internal/shared/config"
	"dinewise-backend/internal/shared/telemetry"
)

func main() {
	file := flag.String("file", "", "path to the restaurant CSV")
	batch := flag.Int("batch", 500, "rows per insert batch")
	flag.Parse()

	if *file == "" {
		log.Printf("-file is required")
		os.Exit(1)
	}

	cfg := config.Load()
	telemetry.Init(cfg.LogLevel, cfg.LogFormat)

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Printf("bootstrap error: %v", err)
		os.Exit(1)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Printf("open %s: %v", *file, err)
		os.Exit(1)
	}
	defer f.Close()

	loader := ingest.NewLoader(app.Writer)
	loader.BatchSize = *batch

	stats, err := loader.Run(context.Background(), f)
	if err != nil {
		log.Printf("ingest failed after %d inserted rows: %v", stats.Inserted, err)
		os.Exit(1)
	}
	log.Printf("ingest done: read=%d inserted=%d skipped=%d", stats.Read, stats.Inserted, stats.Skipped)
}
