package memory

import (
	"context"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	"github.com/Apurer/go-gin-places-api/internal/platform/memdb"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs a memdb write transaction. Writes become visible only on commit.
type UnitOfWork struct {
	db *memdb.DB
}

func NewUnitOfWork(db *memdb.DB) *UnitOfWork {
	if db == nil {
		db = memdb.New()
	}
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	return u.db.Update(func(tx *memdb.Tx) error {
		return fn(ctx, ports.Stores{
			Places: &Repository{scope{db: u.db, tx: tx}},
			Owners: &OwnerRepository{scope{db: u.db, tx: tx}},
		})
	})
}
