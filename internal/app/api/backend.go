package api

import (
	"context"
	"fmt"
	"log/slog"

	placegeocoding "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/geocoding"
	placememory "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/memory"
	placesobs "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/observability"
	placemongo "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/persistence/mongo"
	placepostgres "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/persistence/postgres"
	placeapp "github.com/Apurer/go-gin-places-api/internal/domains/places/application"
	placeports "github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	"github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/credentials"
	usermemory "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/memory"
	usersobs "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/observability"
	usermongo "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/persistence/mongo"
	userpostgres "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/go-gin-places-api/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-places-api/internal/platform/memdb"
	"github.com/Apurer/go-gin-places-api/internal/platform/migrations"
	platformmongo "github.com/Apurer/go-gin-places-api/internal/platform/mongo"
	platformobservability "github.com/Apurer/go-gin-places-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-places-api/internal/platform/postgres"
)

// Backend holds the repositories of one datastore. Places and users always
// share the same store so that a unit of work can span both.
type Backend struct {
	Kind   string
	Places placeports.Repository
	Owners placeports.OwnerRepository
	UoW    placeports.UnitOfWork
	Users  userports.Repository

	cleanup func()
}

// Close releases the datastore connection.
func (b *Backend) Close() {
	if b != nil && b.cleanup != nil {
		b.cleanup()
	}
}

// OpenBackend connects the configured datastore. An unreachable postgres or
// mongo falls back to memory with a warning.
func OpenBackend(ctx context.Context, cfg Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.Datastore {
	case DatastorePostgres:
		db, cleanup := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
		if db == nil {
			break
		}
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("repositories configured with postgres")
		return &Backend{
			Kind:    DatastorePostgres,
			Places:  placepostgres.NewRepository(db),
			Owners:  placepostgres.NewOwnerRepository(db),
			UoW:     placepostgres.NewUnitOfWork(db),
			Users:   userpostgres.NewRepository(db),
			cleanup: cleanup,
		}, nil
	case DatastoreMongo:
		db, cleanup := platformmongo.ConnectDatabase(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if db == nil {
			break
		}
		places := placemongo.NewRepository(db)
		users := usermongo.NewRepository(db)
		if err := places.EnsureIndexes(ctx); err != nil {
			cleanup()
			return nil, fmt.Errorf("ensure place indexes: %w", err)
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			cleanup()
			return nil, fmt.Errorf("ensure user indexes: %w", err)
		}
		logger.Info("repositories configured with mongo")
		return &Backend{
			Kind:    DatastoreMongo,
			Places:  places,
			Owners:  placemongo.NewOwnerRepository(db),
			UoW:     placemongo.NewUnitOfWork(db),
			Users:   users,
			cleanup: cleanup,
		}, nil
	}
	if cfg.Datastore != DatastoreMemory {
		logger.Warn("falling back to in-memory repositories", slog.String("datastore", cfg.Datastore))
	}
	return NewMemoryBackend(), nil
}

// NewMemoryBackend returns repositories over a single private memdb.
func NewMemoryBackend() *Backend {
	db := memdb.New()
	return &Backend{
		Kind:   DatastoreMemory,
		Places: placememory.NewRepository(db),
		Owners: placememory.NewOwnerRepository(db),
		UoW:    placememory.NewUnitOfWork(db),
		Users:  usermemory.NewRepository(db),
	}
}

// NewAddressResolver selects Google geocoding when a key is configured.
func NewAddressResolver(cfg Config, logger *slog.Logger) (placeports.AddressResolver, error) {
	if cfg.GeocodingAPIKey == "" {
		logger.Warn("GEOCODING_API_KEY not set, every address resolves to fixed coordinates")
		return placegeocoding.NewStaticResolver(), nil
	}
	resolver, err := placegeocoding.NewGoogleResolver(cfg.GeocodingBaseURL, cfg.GeocodingAPIKey, nil)
	if err != nil {
		return nil, err
	}
	return resolver, nil
}

// Services are the decorated application services.
type Services struct {
	Places placeports.Service
	Users  userports.Service
}

// NewServices builds both application services over backend and wraps them
// with logging, tracing and metrics.
func NewServices(cfg Config, backend *Backend, resolver placeports.AddressResolver, instruments *platformobservability.Instruments) (Services, error) {
	policy, err := credentials.FromName(cfg.CredentialPolicy)
	if err != nil {
		return Services{}, err
	}
	var placeOpts []placeapp.Option
	if cfg.DefaultPlaceImage != "" {
		placeOpts = append(placeOpts, placeapp.WithDefaultImage(cfg.DefaultPlaceImage))
	}
	userOpts := []userapp.Option{userapp.WithCredentialPolicy(policy)}
	if cfg.DefaultUserImage != "" {
		userOpts = append(userOpts, userapp.WithDefaultAvatar(cfg.DefaultUserImage))
	}

	corePlaces := placeapp.NewService(backend.Places, backend.Owners, backend.UoW, resolver, placeOpts...)
	coreUsers := userapp.NewService(backend.Users, userOpts...)
	return Services{
		Places: placesobs.New(
			corePlaces,
			placesobs.WithLogger(instruments.Logger),
			placesobs.WithTracer(instruments.Tracer("internal.places.application")),
			placesobs.WithMeter(instruments.Meter("internal.places.application")),
		),
		Users: usersobs.New(
			coreUsers,
			usersobs.WithLogger(instruments.Logger),
			usersobs.WithTracer(instruments.Tracer("internal.users.application")),
			usersobs.WithMeter(instruments.Meter("internal.users.application")),
		),
	}, nil
}
