package ports

import (
	"context"

	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
)

// Service defines the places use cases exposed to adapters (inbound/driving port).
type Service interface {
	GetByID(ctx context.Context, input placetypes.PlaceIdentifier) (*placetypes.PlaceProjection, error)
	GetByUser(ctx context.Context, input placetypes.UserIdentifier) ([]*placetypes.PlaceProjection, error)
	Create(ctx context.Context, input placetypes.CreatePlaceInput) (*placetypes.PlaceProjection, error)
	Update(ctx context.Context, input placetypes.UpdatePlaceInput) error
	Delete(ctx context.Context, input placetypes.PlaceIdentifier) error
}
