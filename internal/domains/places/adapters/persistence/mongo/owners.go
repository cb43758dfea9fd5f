package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	usermongo "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/persistence/mongo"
)

var _ ports.OwnerRepository = (*OwnerRepository)(nil)

// OwnerRepository maintains the places array on user documents.
type OwnerRepository struct {
	coll *mongo.Collection
}

func NewOwnerRepository(db *mongo.Database) *OwnerRepository {
	if db == nil {
		return &OwnerRepository{}
	}
	return &OwnerRepository{coll: db.Collection(usermongo.CollectionName)}
}

type ownerDocument struct {
	ID     string   `bson:"_id"`
	Places []string `bson:"places"`
}

var ownerProjection = bson.M{"_id": 1, "places": 1}

func (r *OwnerRepository) Get(ctx context.Context, id string) (*domain.Owner, error) {
	if err := r.ensureColl(); err != nil {
		return nil, err
	}
	var doc ownerDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(ownerProjection)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrOwnerNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// SavePlaces overwrites the places array.
func (r *OwnerRepository) SavePlaces(ctx context.Context, owner *domain.Owner) error {
	if err := r.ensureColl(); err != nil {
		return err
	}
	if owner == nil {
		return errors.New("owner is nil")
	}
	places := append([]string{}, owner.PlaceIDs...)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": owner.ID}, bson.M{"$set": bson.M{"places": places}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ports.ErrOwnerNotFound
	}
	return nil
}

func (r *OwnerRepository) List(ctx context.Context) ([]*domain.Owner, error) {
	if err := r.ensureColl(); err != nil {
		return nil, err
	}
	opts := options.Find().SetProjection(ownerProjection).SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []ownerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	owners := make([]*domain.Owner, 0, len(docs))
	for _, doc := range docs {
		owners = append(owners, doc.toDomain())
	}
	return owners, nil
}

func (r *OwnerRepository) ensureColl() error {
	if r == nil || r.coll == nil {
		return errors.New("mongo owner repository not configured")
	}
	return nil
}

func (d ownerDocument) toDomain() *domain.Owner {
	return &domain.Owner{ID: d.ID, PlaceIDs: append([]string{}, d.Places...)}
}
