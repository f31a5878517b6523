package main

import (
	"log"

	"dinewise-backend/internal/bootstrap"
	"dinewise-backend/internal/shared/config"
	"dinewise-backend/internal/shared/server"
	"dinewise-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.LogLevel, cfg.LogFormat)

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	healthy := func() bool {
		if app.DB == nil {
			return true
		}
		return app.DB.Ping() == nil
	}
	r := server.NewRouter(cfg, app.RecsHandler, healthy)

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{"addr": addr, "env": cfg.Env})

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
