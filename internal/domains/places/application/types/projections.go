package types

import (
	"time"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/shared/projection"
)

// PlaceProjection transports a place together with its persistence metadata.
type PlaceProjection = projection.Projection[*domain.Place]

// NewPlaceProjection wraps a place with persistence metadata.
func NewPlaceProjection(place *domain.Place, createdAt, updatedAt time.Time) *PlaceProjection {
	if place == nil {
		return nil
	}
	return &PlaceProjection{
		Entity: place,
		Metadata: projection.Metadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}
