package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-places-api/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-places-api/internal/platform/observability"
	placeactivities "github.com/Apurer/go-gin-places-api/internal/platform/temporal/activities/places"
	placeworkflows "github.com/Apurer/go-gin-places-api/internal/platform/temporal/workflows/places"
)

func main() {
	ctx := context.Background()
	const serviceName = "places-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	backend, err := api.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open datastore", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if backend.Kind == api.DatastoreMemory {
		logger.Error("worker needs postgres or mongo; places written to a private memory datastore are invisible to the API")
		backend.Close()
		os.Exit(1)
	}
	defer backend.Close()
	resolver, err := api.NewAddressResolver(cfg, logger)
	if err != nil {
		logger.Error("failed to configure geocoding", slog.String("error", err.Error()))
		os.Exit(1)
	}
	services, err := api.NewServices(cfg, backend, resolver, instruments)
	if err != nil {
		logger.Error("failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	placeActivities := placeactivities.NewActivities(services.Places)

	cfg.TemporalDisabled = false
	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, placeworkflows.PlaceCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(placeworkflows.PlaceCreationWorkflow, workflow.RegisterOptions{Name: placeworkflows.PlaceCreationWorkflowName})
	w.RegisterActivityWithOptions(placeActivities.CreatePlace, activity.RegisterOptions{Name: placeactivities.CreatePlaceActivityName})

	logger.Info("worker listening", slog.String("taskQueue", placeworkflows.PlaceCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
