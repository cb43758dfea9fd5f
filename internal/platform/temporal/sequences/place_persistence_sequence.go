package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	placeactivities "github.com/Apurer/go-gin-places-api/internal/platform/temporal/activities/places"
)

// RunPlacePersistenceSequence executes the create activity exactly once; a
// failed transaction is never retried.
func RunPlacePersistenceSequence(ctx workflow.Context, input placetypes.CreatePlaceInput) (*placetypes.PlaceProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("place persistence sequence started", "creatorId", input.CreatorID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}

	var projection placetypes.PlaceProjection
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), placeactivities.CreatePlaceActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("place persistence sequence failed", "creatorId", input.CreatorID, "error", err)
		return nil, err
	}
	if projection.Entity != nil {
		logger.Info("place persistence sequence completed", "placeId", projection.Entity.ID)
	}
	return &projection, nil
}
