package geocoding

import (
	"context"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
)

// FallbackCoordinates are returned by StaticResolver for every address.
var FallbackCoordinates = ports.Coordinates{Lat: 40.7484474, Lng: -73.9871516}

var _ ports.AddressResolver = StaticResolver{}

// StaticResolver answers every address with fixed coordinates. Used when no
// geocoding API key is configured.
type StaticResolver struct {
	Coordinates ports.Coordinates
}

// NewStaticResolver returns a resolver answering FallbackCoordinates.
func NewStaticResolver() StaticResolver {
	return StaticResolver{Coordinates: FallbackCoordinates}
}

func (s StaticResolver) Resolve(ctx context.Context, _ string) (ports.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return ports.Coordinates{}, err
	}
	return s.Coordinates, nil
}
