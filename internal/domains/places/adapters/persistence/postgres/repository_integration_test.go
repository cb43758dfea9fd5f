//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	userpostgres "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/persistence/postgres"
	userdomain "github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-places-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-places-api/internal/platform/postgres"
)

func setupPlacesPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("places_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := platformpostgres.Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func seedOwner(t *testing.T, db *gorm.DB) *userdomain.User {
	t.Helper()
	user, err := userdomain.NewUser("Alice", "alice@example.com", "secret1", "")
	require.NoError(t, err)
	_, err = userpostgres.NewRepository(db).Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestRepository_CreateUpdateDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPlacesPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	owner := seedOwner(t, db)

	place, err := domain.NewPlace("Eiffel Tower", "Famous tower", "Paris", domain.Location{Lat: 48.85, Lng: 2.29}, "img", owner.ID)
	require.NoError(t, err)
	created, err := repo.Create(ctx, place)
	require.NoError(t, err)
	assert.False(t, created.Metadata.CreatedAt.IsZero())

	require.NoError(t, repo.UpdateDetails(ctx, place.ID, "Tour Eiffel", "Iron lattice tower"))
	require.NoError(t, repo.UpdateDetails(ctx, place.ID, "Tour Eiffel", "Iron lattice tower"))
	assert.ErrorIs(t, repo.UpdateDetails(ctx, "missing", "x", "xxxxx"), ports.ErrNotFound)

	fetched, err := repo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tour Eiffel", fetched.Entity.Title)
	assert.Equal(t, 48.85, fetched.Entity.Location.Lat)

	require.NoError(t, repo.Delete(ctx, place.ID))
	_, err = repo.GetByID(ctx, place.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUnitOfWork_RollbackLeavesOwnerUntouched(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPlacesPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	owner := seedOwner(t, db)
	place, err := domain.NewPlace("Tower", "Famous tower", "Paris", domain.Location{}, "", owner.ID)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = NewUnitOfWork(db).Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		if _, err := stores.Places.Create(ctx, place); err != nil {
			return err
		}
		loaded, err := stores.Owners.Get(ctx, owner.ID)
		if err != nil {
			return err
		}
		loaded.AttachPlace(place.ID)
		if err := stores.Owners.SavePlaces(ctx, loaded); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewRepository(db).GetByID(ctx, place.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	reloaded, err := NewOwnerRepository(db).Get(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.PlaceIDs)
}

func TestUnitOfWork_CommitAttachesPlace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPlacesPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	owner := seedOwner(t, db)
	place, err := domain.NewPlace("Tower", "Famous tower", "Paris", domain.Location{}, "", owner.ID)
	require.NoError(t, err)

	err = NewUnitOfWork(db).Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		if _, err := stores.Places.Create(ctx, place); err != nil {
			return err
		}
		loaded, err := stores.Owners.Get(ctx, owner.ID)
		if err != nil {
			return err
		}
		loaded.AttachPlace(place.ID)
		return stores.Owners.SavePlaces(ctx, loaded)
	})
	require.NoError(t, err)

	found, err := NewRepository(db).FindByIDs(ctx, []string{place.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	reloaded, err := NewOwnerRepository(db).Get(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{place.ID}, reloaded.PlaceIDs)
}
