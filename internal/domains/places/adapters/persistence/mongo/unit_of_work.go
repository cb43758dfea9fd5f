package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	platformmongo "github.com/Apurer/go-gin-places-api/internal/platform/mongo"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs fn inside a MongoDB multi-document transaction. Requires a
// replica set or sharded cluster.
type UnitOfWork struct {
	db     *mongo.Database
	places *Repository
	owners *OwnerRepository
}

func NewUnitOfWork(db *mongo.Database) *UnitOfWork {
	return &UnitOfWork{db: db, places: NewRepository(db), owners: NewOwnerRepository(db)}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	return platformmongo.WithTransaction(ctx, u.db, func(txCtx context.Context) error {
		return fn(txCtx, ports.Stores{Places: u.places, Owners: u.owners})
	})
}
