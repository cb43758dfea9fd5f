// Package mongo stores places as documents and maintains the owned-place
// arrays on user documents.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	types "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
)

// CollectionName holds place documents.
const CollectionName = "places"

var _ ports.Repository = (*Repository)(nil)

// Repository persists places in MongoDB. Operations join a transaction when
// the context carries a session.
type Repository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	if db == nil {
		return &Repository{}
	}
	return &Repository{coll: db.Collection(CollectionName)}
}

type locationDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

type placeDocument struct {
	ID          string           `bson:"_id"`
	Title       string           `bson:"title"`
	Description string           `bson:"description"`
	Address     string           `bson:"address"`
	Location    locationDocument `bson:"location"`
	Image       string           `bson:"image"`
	Creator     string           `bson:"creator"`
	CreatedAt   time.Time        `bson:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt"`
}

// EnsureIndexes indexes places by creator.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	if err := r.ensureColl(); err != nil {
		return err
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "creator", Value: 1}}})
	return err
}

func (r *Repository) Create(ctx context.Context, place *domain.Place) (*types.PlaceProjection, error) {
	if err := r.ensureColl(); err != nil {
		return nil, err
	}
	if place == nil {
		return nil, errors.New("place is nil")
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := toDocument(place)
	doc.CreatedAt, doc.UpdatedAt = now, now
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toProjection(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*types.PlaceProjection, error) {
	if err := r.ensureColl(); err != nil {
		return nil, err
	}
	var doc placeDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return doc.toProjection(), nil
}

// FindByIDs runs one $in query and restores the order of ids.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) ([]*types.PlaceProjection, error) {
	if err := r.ensureColl(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*types.PlaceProjection{}, nil
	}
	docs, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]placeDocument, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}
	result := make([]*types.PlaceProjection, 0, len(docs))
	for _, id := range ids {
		if doc, ok := byID[id]; ok {
			result = append(result, doc.toProjection())
		}
	}
	return result, nil
}

// UpdateDetails is a single $set; ErrNotFound when nothing matched.
func (r *Repository) UpdateDetails(ctx context.Context, id, title, description string) error {
	if err := r.ensureColl(); err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureColl(); err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*types.PlaceProjection, error) {
	if err := r.ensureColl(); err != nil {
		return nil, err
	}
	docs, err := r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	result := make([]*types.PlaceProjection, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toProjection())
	}
	return result, nil
}

func (r *Repository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]placeDocument, error) {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cursor, err := r.coll.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, err
	}
	var docs []placeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *Repository) ensureColl() error {
	if r == nil || r.coll == nil {
		return errors.New("mongo place repository not configured")
	}
	return nil
}

func toDocument(place *domain.Place) placeDocument {
	return placeDocument{
		ID:          place.ID,
		Title:       place.Title,
		Description: place.Description,
		Address:     place.Address,
		Location:    locationDocument{Lat: place.Location.Lat, Lng: place.Location.Lng},
		Image:       place.Image,
		Creator:     place.CreatorID,
	}
}

func (d placeDocument) toProjection() *types.PlaceProjection {
	place := &domain.Place{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Address:     d.Address,
		Location:    domain.Location{Lat: d.Location.Lat, Lng: d.Location.Lng},
		Image:       d.Image,
		CreatorID:   d.Creator,
	}
	return types.NewPlaceProjection(place, d.CreatedAt, d.UpdatedAt)
}
