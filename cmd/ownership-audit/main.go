package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-places-api/internal/app/api"
	placeapp "github.com/Apurer/go-gin-places-api/internal/domains/places/application"
	platformobservability "github.com/Apurer/go-gin-places-api/internal/platform/observability"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	logger := platformobservability.NewLogger(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	code := run(ctx, logger)
	cancel()
	os.Exit(code)
}

// run audits the configured datastore and returns the process exit code.
// The backend is closed before it returns.
func run(ctx context.Context, logger *slog.Logger) int {
	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		return 1
	}
	if cfg.Datastore == api.DatastoreMemory {
		logger.Error("no persistent datastore configured; set POSTGRES_DSN or MONGO_URI")
		return 1
	}
	backend, err := api.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open datastore", slog.String("error", err.Error()))
		return 1
	}
	defer backend.Close()
	if backend.Kind == api.DatastoreMemory {
		logger.Error("datastore unreachable; nothing to audit", slog.String("datastore", cfg.Datastore))
		return 1
	}

	findings, err := placeapp.AuditOwnership(ctx, backend.Places, backend.Owners)
	if err != nil {
		logger.Error("ownership audit failed", slog.String("error", err.Error()))
		return 1
	}
	for _, finding := range findings {
		logger.Warn("ownership inconsistency",
			slog.String("kind", finding.Kind),
			slog.String("place_id", finding.PlaceID),
			slog.String("owner_id", finding.OwnerID),
		)
	}
	logger.Info("ownership audit finished", slog.String("datastore", backend.Kind), slog.Int("inconsistencies", len(findings)))
	if len(findings) > 0 {
		return 1
	}
	return 0
}
