package places

import (
	"go.temporal.io/sdk/workflow"

	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	"github.com/Apurer/go-gin-places-api/internal/platform/temporal/sequences"
)

const (
	// PlaceCreationWorkflowName is the public identifier for registering the workflow.
	PlaceCreationWorkflowName = "places.workflows.Creation"
	// PlaceCreationTaskQueue is the queue consumed by the worker processing place workflows.
	PlaceCreationTaskQueue = "PLACE_CREATION"
)

// PlaceCreationWorkflowInput captures the payload required to create a place.
type PlaceCreationWorkflowInput struct {
	Command placetypes.CreatePlaceInput
	TraceID string
}

// PlaceCreationWorkflow orchestrates the activities needed to create a place.
func PlaceCreationWorkflow(ctx workflow.Context, input PlaceCreationWorkflowInput) (*placetypes.PlaceProjection, error) {
	logger := workflow.GetLogger(ctx)
	creatorID := input.Command.CreatorID
	logger.Info("PlaceCreationWorkflow started", withTraceID(input.TraceID, "creatorId", creatorID)...)
	projection, err := sequences.RunPlacePersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("PlaceCreationWorkflow failed", withTraceID(input.TraceID, "creatorId", creatorID, "error", err)...)
		return nil, err
	}
	if projection != nil && projection.Entity != nil {
		logger.Info("PlaceCreationWorkflow completed", withTraceID(input.TraceID, "placeId", projection.Entity.ID)...)
	}
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
