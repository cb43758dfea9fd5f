package api

import (
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	placesworkflows "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/workflows"
	placeports "github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	platformobservability "github.com/Apurer/go-gin-places-api/internal/platform/observability"
)

// ErrTemporalDisabled is returned by DialTemporal when TEMPORAL_DISABLED is set.
var ErrTemporalDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// DialTemporal connects a traced Temporal client that logs through slog.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, ErrTemporalDisabled
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// NewPlaceWorkflows picks the CreatePlace orchestrator. The memory backend lives
// inside this process, so a Temporal worker could never see its rows; it always
// runs inline and dial is not called. The returned func releases the client.
func NewPlaceWorkflows(backend *Backend, places placeports.Service, dial func() (client.Client, error), logger *slog.Logger) (placeports.WorkflowOrchestrator, func()) {
	inline := placesworkflows.NewInlinePlaceWorkflows(places)
	if backend.Kind == DatastoreMemory {
		logger.Info("running inline CreatePlace; the memory datastore is not shared with Temporal workers")
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreatePlace", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("datastore", backend.Kind))
	return placesworkflows.NewTemporalPlaceWorkflows(temporalClient).WithFallback(inline), temporalClient.Close
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
