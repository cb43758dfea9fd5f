package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
)

func TestRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		user, err := domain.NewUser("Alice", "alice@example.com", "secret1", "")
		require.NoError(mt, err)

		created, err := repo.Create(ctx, user)
		require.NoError(mt, err)
		assert.Equal(mt, user.ID, created.ID)
		assert.Empty(mt, created.PlaceIDs)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: places.users index: email_1",
		}))
		user, err := domain.NewUser("Alice", "alice@example.com", "secret1", "")
		require.NoError(mt, err)

		_, err = repo.Create(ctx, user)
		assert.ErrorIs(mt, err, ports.ErrDuplicateEmail)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "places.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "name", Value: "Alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "password", Value: "secret1"},
			{Key: "image", Value: "img"},
			{Key: "places", Value: bson.A{"p1"}},
		}))

		user, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", user.ID)
		assert.Equal(mt, "secret1", user.Password)
		assert.Equal(mt, []string{"p1"}, user.PlaceIDs)
	})

	mt.Run("get by email missing", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "places.users", mtest.FirstBatch))

		_, err := repo.GetByEmail(ctx, "missing@example.com")
		assert.ErrorIs(mt, err, ports.ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "places.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "u1"}, {Key: "name", Value: "Alice"}, {Key: "email", Value: "a@example.com"}},
			bson.D{{Key: "_id", Value: "u2"}, {Key: "name", Value: "Bob"}, {Key: "email", Value: "b@example.com"}},
		))

		users, err := repo.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Empty(mt, users[0].Password)
		assert.Equal(mt, "Bob", users[1].Name)
	})
}
