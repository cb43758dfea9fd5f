package ports

import (
	"context"

	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the places bounded context.
type WorkflowOrchestrator interface {
	CreatePlace(ctx context.Context, input placetypes.CreatePlaceInput) (*placetypes.PlaceProjection, error)
}
