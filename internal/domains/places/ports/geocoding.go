package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
)

// ErrAddressNotFound is returned when the address has no geocoding result.
var ErrAddressNotFound = errors.New("address could not be geocoded")

// Coordinates is the resolver's result.
type Coordinates = domain.Location

// AddressResolver turns a free-text address into coordinates.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (Coordinates, error)
}
