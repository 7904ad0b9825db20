package main

// Run database migrations:
//   go run ./cmd/migrate
// Print migration status instead:
//   go run ./cmd/migrate status

import (
	"context"
	"log"
	"os"

	"resume-matcher/internal/shared/config"
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

	opts := db.OptionsFromConfig(db.DefaultMigrateOptions(), cfg.DBPool)
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if len(os.Args) > 1 && os.Args[1] == "status" {
		if err := db.MigrationStatus(ctx, sqlDB); err != nil {
			telemetry.Error("migrate.status_failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		return
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}
