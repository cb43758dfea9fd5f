package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/shared/projection"
)

var (
	ErrNotFound      = errors.New("place not found")
	ErrOwnerNotFound = errors.New("place owner not found")
)

type Repository interface {
	Create(ctx context.Context, place *domain.Place) (*projection.Projection[*domain.Place], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Place], error)
	// FindByIDs returns the places in the order of ids, skipping ids that do not resolve.
	FindByIDs(ctx context.Context, ids []string) ([]*projection.Projection[*domain.Place], error)
	// UpdateDetails sets title and description in one write. ErrNotFound when no row matched.
	UpdateDetails(ctx context.Context, id, title, description string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Place], error)
}

// OwnerRepository reads and writes the owned-place set of users.
type OwnerRepository interface {
	Get(ctx context.Context, id string) (*domain.Owner, error)
	SavePlaces(ctx context.Context, owner *domain.Owner) error
	List(ctx context.Context) ([]*domain.Owner, error)
}
