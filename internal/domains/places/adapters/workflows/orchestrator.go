package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	placeactivities "github.com/Apurer/go-gin-places-api/internal/platform/temporal/activities/places"
	placeworkflows "github.com/Apurer/go-gin-places-api/internal/platform/temporal/workflows/places"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalPlaceWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlinePlaceWorkflows)(nil)
)

// TemporalPlaceWorkflows starts place workflows on a Temporal cluster.
type TemporalPlaceWorkflows struct {
	client    client.Client
	taskQueue string
	fallback  ports.WorkflowOrchestrator
}

// NewTemporalPlaceWorkflows wires a Temporal client into the orchestrator.
func NewTemporalPlaceWorkflows(c client.Client) *TemporalPlaceWorkflows {
	return &TemporalPlaceWorkflows{client: c, taskQueue: placeworkflows.PlaceCreationTaskQueue}
}

// WithFallback runs creations through fallback while the cluster is unavailable.
func (o *TemporalPlaceWorkflows) WithFallback(fallback ports.WorkflowOrchestrator) *TemporalPlaceWorkflows {
	o.fallback = fallback
	return o
}

// CreatePlace runs the creation workflow and waits for its result. A failed
// workflow yields the same typed error the service would have returned.
func (o *TemporalPlaceWorkflows) CreatePlace(ctx context.Context, input placetypes.CreatePlaceInput) (*placetypes.PlaceProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal place workflows not configured")
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("place-creation-%s", uuid.NewString()),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		placeworkflows.PlaceCreationWorkflowName,
		placeworkflows.PlaceCreationWorkflowInput{Command: input, TraceID: traceID},
	)
	if err != nil {
		var unavailable *serviceerror.Unavailable
		if errors.As(err, &unavailable) && o.fallback != nil {
			return o.fallback.CreatePlace(ctx, input)
		}
		return nil, err
	}
	var projection placetypes.PlaceProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, placeactivities.ErrorFromTemporal(err)
	}
	return &projection, nil
}

// InlinePlaceWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlinePlaceWorkflows struct {
	service ports.Service
}

// NewInlinePlaceWorkflows wraps the places service for synchronous execution.
func NewInlinePlaceWorkflows(service ports.Service) *InlinePlaceWorkflows {
	return &InlinePlaceWorkflows{service: service}
}

// CreatePlace delegates to the application service without durable orchestration.
func (o *InlinePlaceWorkflows) CreatePlace(ctx context.Context, input placetypes.CreatePlaceInput) (*placetypes.PlaceProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline place workflows not configured")
	}
	return o.service.Create(ctx, input)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
