package memory

import (
	"context"
	"errors"
	"time"

	types "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	"github.com/Apurer/go-gin-places-api/internal/platform/memdb"
)

// Collection is the memdb collection holding places.
const Collection = "places"

var _ ports.Repository = (*Repository)(nil)

type placeDoc struct {
	place     domain.Place
	createdAt time.Time
	updatedAt time.Time
}

func (d placeDoc) projection() *types.PlaceProjection {
	place := d.place
	return types.NewPlaceProjection(&place, d.createdAt, d.updatedAt)
}

// Repository is an in-memory implementation used for local runs and tests.
// When bound to a transaction it reads and writes through it.
type Repository struct {
	scope
}

// NewRepository binds the repository to a shared store. A nil store gets a private one.
func NewRepository(db *memdb.DB) *Repository {
	if db == nil {
		db = memdb.New()
	}
	return &Repository{scope{db: db}}
}

// Create stores a new place.
func (r *Repository) Create(_ context.Context, place *domain.Place) (*types.PlaceProjection, error) {
	if place == nil {
		return nil, errors.New("cannot save nil place")
	}
	now := time.Now().UTC()
	doc := placeDoc{place: *place, createdAt: now, updatedAt: now}
	err := r.update(func(tx *memdb.Tx) error {
		if _, ok := tx.Get(Collection, place.ID); ok {
			return errors.New("place id already exists")
		}
		return tx.Put(Collection, place.ID, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc.projection(), nil
}

// GetByID fetches a place if present.
func (r *Repository) GetByID(_ context.Context, id string) (*types.PlaceProjection, error) {
	var found *types.PlaceProjection
	err := r.view(func(tx *memdb.Tx) error {
		value, ok := tx.Get(Collection, id)
		if !ok {
			return ports.ErrNotFound
		}
		found = value.(placeDoc).projection()
		return nil
	})
	return found, err
}

// FindByIDs resolves ids in order, skipping the ones that do not exist.
func (r *Repository) FindByIDs(_ context.Context, ids []string) ([]*types.PlaceProjection, error) {
	result := make([]*types.PlaceProjection, 0, len(ids))
	err := r.view(func(tx *memdb.Tx) error {
		for _, id := range ids {
			if value, ok := tx.Get(Collection, id); ok {
				result = append(result, value.(placeDoc).projection())
			}
		}
		return nil
	})
	return result, err
}

// UpdateDetails sets title and description.
func (r *Repository) UpdateDetails(_ context.Context, id, title, description string) error {
	return r.update(func(tx *memdb.Tx) error {
		value, ok := tx.Get(Collection, id)
		if !ok {
			return ports.ErrNotFound
		}
		doc := value.(placeDoc)
		doc.place.Title = title
		doc.place.Description = description
		doc.updatedAt = time.Now().UTC()
		return tx.Put(Collection, id, doc)
	})
}

// Delete removes a place.
func (r *Repository) Delete(_ context.Context, id string) error {
	return r.update(func(tx *memdb.Tx) error {
		existed, err := tx.Delete(Collection, id)
		if err != nil {
			return err
		}
		if !existed {
			return ports.ErrNotFound
		}
		return nil
	})
}

// List returns every place in id order.
func (r *Repository) List(_ context.Context) ([]*types.PlaceProjection, error) {
	result := []*types.PlaceProjection{}
	err := r.view(func(tx *memdb.Tx) error {
		tx.Scan(Collection, func(_ string, value any) bool {
			result = append(result, value.(placeDoc).projection())
			return true
		})
		return nil
	})
	return result, err
}

// scope runs reads and writes either through a bound transaction or through
// short-lived ones of its own.
type scope struct {
	db *memdb.DB
	tx *memdb.Tx
}

func (s scope) view(fn func(tx *memdb.Tx) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.View(fn)
}

func (s scope) update(fn func(tx *memdb.Tx) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.Update(fn)
}
