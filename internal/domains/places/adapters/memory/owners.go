package memory

import (
	"context"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	usermemory "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/memory"
	userdomain "github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-places-api/internal/platform/memdb"
)

var _ ports.OwnerRepository = (*OwnerRepository)(nil)

// OwnerRepository maintains the place-id set on users stored by the users memory adapter.
type OwnerRepository struct {
	scope
}

// NewOwnerRepository must share its store with the users repository.
func NewOwnerRepository(db *memdb.DB) *OwnerRepository {
	if db == nil {
		db = memdb.New()
	}
	return &OwnerRepository{scope{db: db}}
}

// Get loads the owned-place set of a user.
func (r *OwnerRepository) Get(_ context.Context, id string) (*domain.Owner, error) {
	var owner *domain.Owner
	err := r.view(func(tx *memdb.Tx) error {
		value, ok := tx.Get(usermemory.Collection, id)
		if !ok {
			return ports.ErrOwnerNotFound
		}
		owner = toOwner(value.(userdomain.User))
		return nil
	})
	return owner, err
}

// SavePlaces overwrites the user's place-id set.
func (r *OwnerRepository) SavePlaces(_ context.Context, owner *domain.Owner) error {
	return r.update(func(tx *memdb.Tx) error {
		value, ok := tx.Get(usermemory.Collection, owner.ID)
		if !ok {
			return ports.ErrOwnerNotFound
		}
		user := value.(userdomain.User)
		user.PlaceIDs = append([]string{}, owner.PlaceIDs...)
		return tx.Put(usermemory.Collection, user.ID, user)
	})
}

// List returns the place-id set of every user.
func (r *OwnerRepository) List(_ context.Context) ([]*domain.Owner, error) {
	owners := []*domain.Owner{}
	err := r.view(func(tx *memdb.Tx) error {
		tx.Scan(usermemory.Collection, func(_ string, value any) bool {
			owners = append(owners, toOwner(value.(userdomain.User)))
			return true
		})
		return nil
	})
	return owners, err
}

func toOwner(user userdomain.User) *domain.Owner {
	return &domain.Owner{ID: user.ID, PlaceIDs: append([]string{}, user.PlaceIDs...)}
}
