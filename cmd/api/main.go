package main

import (
	"context"
	"log"

	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server"
	"resume-matcher/internal/shared/storage/db"
	"resume-matcher/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.Debug); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer telemetry.Sync()

	ctx := context.Background()
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		telemetry.Logger().Fatal("bootstrap failed: " + err.Error())
	}
	defer app.Close()

	if app.DB != nil {
		if err := db.RunMigrations(ctx, app.DB); err != nil {
			telemetry.Logger().Fatal("migrations failed: " + err.Error())
		}
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("api.starting", map[string]any{"addr": addr, "env": cfg.Env})

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("api.stopped", map[string]any{"error": err.Error()})
	}
}
