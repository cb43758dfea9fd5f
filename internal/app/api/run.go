package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"

	placesserver "github.com/Apurer/go-gin-places-api/go"
	platformobservability "github.com/Apurer/go-gin-places-api/internal/platform/observability"
)

// ServiceName identifies the API process in telemetry.
const ServiceName = "places-api"

// Run boots the Places HTTP API with observability, repositories, and workflows
// wired, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	instruments, shutdown, err := platformobservability.Init(ctx, ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()
	logger.Info("datastore ready", slog.String("datastore", backend.Kind))
	resolver, err := NewAddressResolver(cfg, logger)
	if err != nil {
		return err
	}
	services, err := NewServices(cfg, backend, resolver, instruments)
	if err != nil {
		return err
	}

	placeWorkflows, closeWorkflows := NewPlaceWorkflows(backend, services.Places, func() (client.Client, error) {
		return DialTemporal(cfg, instruments, "temporal-client")
	}, logger)
	defer closeWorkflows()

	handlers := placesserver.ApiHandleFunctions{
		PlaceAPI: placesserver.NewPlaceAPI(services.Places, placeWorkflows),
		UserAPI:  placesserver.NewUserAPI(services.Users),
	}
	router := placesserver.NewRouter(handlers, otelgin.Middleware(ServiceName), placesserver.AccessLog(logger))
	return serve(ctx, cfg.Addr(), router, logger)
}

func serve(ctx context.Context, addr string, router *gin.Engine, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Places API listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Places API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Places API shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
