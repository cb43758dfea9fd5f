// Package mongo stores users as documents in the "users" collection.
package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
)

// CollectionName is shared with the places adapters that maintain owned-place sets.
const CollectionName = "users"

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in MongoDB.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository binds the repository to db. Call EnsureIndexes once at startup.
func NewRepository(db *mongo.Database) *Repository {
	if db == nil {
		return &Repository{}
	}
	return &Repository{coll: db.Collection(CollectionName)}
}

type userDocument struct {
	ID       string   `bson:"_id"`
	Name     string   `bson:"name"`
	Email    string   `bson:"email"`
	Password string   `bson:"password,omitempty"`
	Image    string   `bson:"image"`
	Places   []string `bson:"places"`
}

// EnsureIndexes creates the unique email index.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	if err := r.ensureColl(); err != nil {
		return err
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a user document.
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureColl(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	doc := toDocument(user)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// GetByEmail fetches a user by normalized email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// List returns all users, projecting out the password field.
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureColl(); err != nil {
		return nil, err
	}
	opts := options.Find().SetProjection(bson.M{"password": 0}).SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	if err := r.ensureColl(); err != nil {
		return nil, err
	}
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *Repository) ensureColl() error {
	if r == nil || r.coll == nil {
		return errors.New("mongo user repository not configured")
	}
	return nil
}

func toDocument(user *domain.User) userDocument {
	places := append([]string{}, user.PlaceIDs...)
	return userDocument{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
		Image:    user.Image,
		Places:   places,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:       d.ID,
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
		Image:    d.Image,
		PlaceIDs: append([]string{}, d.Places...),
	}
}
