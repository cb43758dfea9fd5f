package application

import (
	"context"
	"errors"

	types "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

// DefaultImage is attached to every new place.
const DefaultImage = "https://www.theincmagazine.com/wp-content/uploads/2021/02/Dubai-Roadmap-of-Worlds-Happiest-City.jpg"

// Service orchestrates the places bounded context use cases.
type Service struct {
	places   ports.Repository
	owners   ports.OwnerRepository
	uow      ports.UnitOfWork
	resolver ports.AddressResolver
	image    string
}

type Option func(*Service)

// WithDefaultImage overrides the image given to new places.
func WithDefaultImage(uri string) Option {
	return func(s *Service) {
		if uri != "" {
			s.image = uri
		}
	}
}

// NewService wires the places service with its dependencies.
func NewService(places ports.Repository, owners ports.OwnerRepository, uow ports.UnitOfWork, resolver ports.AddressResolver, opts ...Option) *Service {
	s := &Service{places: places, owners: owners, uow: uow, resolver: resolver, image: DefaultImage}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// GetByID loads a single place.
func (s *Service) GetByID(ctx context.Context, input types.PlaceIdentifier) (*types.PlaceProjection, error) {
	place, err := s.places.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.NotFound(MsgPlaceNotFound, err)
		}
		return nil, apierrors.Internal(MsgFindPlaceFailed, err)
	}
	return place, nil
}

// GetByUser lists the places in the user's owned set, in set order. An unknown
// user and a user without places are both reported as not found.
func (s *Service) GetByUser(ctx context.Context, input types.UserIdentifier) ([]*types.PlaceProjection, error) {
	owner, err := s.owners.Get(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrOwnerNotFound) {
			return nil, apierrors.NotFound(MsgUserPlacesNotFound, err)
		}
		return nil, apierrors.Internal(MsgFetchPlacesFailed, err)
	}
	places, err := s.places.FindByIDs(ctx, owner.PlaceIDs)
	if err != nil {
		return nil, apierrors.Internal(MsgFetchPlacesFailed, err)
	}
	if len(places) == 0 {
		return nil, apierrors.NotFound(MsgUserPlacesNotFound, nil)
	}
	return places, nil
}

// Create geocodes the address, checks the creator exists, then stores the
// place and attaches it to the creator in one unit of work.
func (s *Service) Create(ctx context.Context, input types.CreatePlaceInput) (*types.PlaceProjection, error) {
	place, err := domain.NewPlace(input.Title, input.Description, input.Address, domain.Location{}, s.image, input.CreatorID)
	if err != nil {
		return nil, mapInputError(err, MsgCreateFailed)
	}

	coordinates, err := s.resolve(ctx, place.Address)
	if err != nil {
		return nil, err
	}
	place.Location = coordinates

	if _, err := s.owners.Get(ctx, place.CreatorID); err != nil {
		if errors.Is(err, ports.ErrOwnerNotFound) {
			return nil, apierrors.NotFound(MsgCreatorNotFound, err)
		}
		return nil, apierrors.Internal(MsgCreateFailed, err)
	}

	var created *types.PlaceProjection
	err = s.uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		saved, err := stores.Places.Create(ctx, place)
		if err != nil {
			return err
		}
		owner, err := stores.Owners.Get(ctx, place.CreatorID)
		if err != nil {
			return err
		}
		owner.AttachPlace(place.ID)
		if err := stores.Owners.SavePlaces(ctx, owner); err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, apierrors.Internal(MsgCreateFailed, err)
	}
	return created, nil
}

// Update replaces title and description with a single write, without reading
// the place first.
func (s *Service) Update(ctx context.Context, input types.UpdatePlaceInput) error {
	if err := domain.ValidateDetails(input.Title, input.Description); err != nil {
		return mapInputError(err, MsgUpdateFailed)
	}
	if err := s.places.UpdateDetails(ctx, input.ID, input.Title, input.Description); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return apierrors.NotFound(MsgPlaceNotFoundForID, err)
		}
		return apierrors.Internal(MsgUpdateFailed, err)
	}
	return nil
}

// Delete removes the place and detaches it from its creator in one unit of work.
func (s *Service) Delete(ctx context.Context, input types.PlaceIdentifier) error {
	existing, err := s.places.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return apierrors.NotFound(MsgPlaceNotFoundForID, err)
		}
		return apierrors.Internal(MsgDeleteFailed, err)
	}
	place := existing.Entity

	err = s.uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		if err := stores.Places.Delete(ctx, place.ID); err != nil {
			return err
		}
		owner, err := stores.Owners.Get(ctx, place.CreatorID)
		if err != nil {
			return err
		}
		owner.DetachPlace(place.ID)
		return stores.Owners.SavePlaces(ctx, owner)
	})
	if err != nil {
		return apierrors.Internal(MsgDeleteFailed, err)
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, address string) (ports.Coordinates, error) {
	coordinates, err := s.resolver.Resolve(ctx, address)
	if err == nil {
		return coordinates, nil
	}
	if errors.Is(err, ports.ErrAddressNotFound) {
		return ports.Coordinates{}, apierrors.Validation(MsgAddressNotFound, err)
	}
	if _, ok := apierrors.As(err); ok {
		return ports.Coordinates{}, err
	}
	return ports.Coordinates{}, apierrors.Internal(MsgCreateFailed, err)
}

var _ ports.Service = (*Service)(nil)
