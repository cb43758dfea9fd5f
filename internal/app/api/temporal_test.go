package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	placesworkflows "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/workflows"
	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	userports "github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
)

func memoryServices(t *testing.T, backend *Backend) Services {
	t.Helper()
	instruments := discardInstruments()
	cfg := Config{Datastore: DatastoreMemory}
	resolver, err := NewAddressResolver(cfg, instruments.Logger)
	require.NoError(t, err)
	services, err := NewServices(cfg, backend, resolver, instruments)
	require.NoError(t, err)
	return services
}

func TestNewPlaceWorkflows_MemoryBackendStaysInline(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	defer backend.Close()
	services := memoryServices(t, backend)

	dialed := false
	orchestrator, closeFn := NewPlaceWorkflows(backend, services.Places, func() (client.Client, error) {
		dialed = true
		return &mocks.Client{}, nil
	}, discardInstruments().Logger)
	defer closeFn()

	require.False(t, dialed)
	require.IsType(t, &placesworkflows.InlinePlaceWorkflows{}, orchestrator)

	user, err := services.Users.Signup(ctx, userports.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	created, err := orchestrator.CreatePlace(ctx, placetypes.CreatePlaceInput{
		Title: "Eiffel", Description: "Iron tower", Address: "Paris", CreatorID: user.ID,
	})
	require.NoError(t, err)

	fetched, err := services.Places.GetByID(ctx, placetypes.PlaceIdentifier{ID: created.Entity.ID})
	require.NoError(t, err)
	require.Equal(t, "Eiffel", fetched.Entity.Title)
}

func TestNewPlaceWorkflows_SharedBackendUsesTemporal(t *testing.T) {
	backend := NewMemoryBackend()
	defer backend.Close()
	backend.Kind = DatastorePostgres
	services := memoryServices(t, backend)

	c := &mocks.Client{}
	c.On("Close").Return()
	orchestrator, closeFn := NewPlaceWorkflows(backend, services.Places, func() (client.Client, error) {
		return c, nil
	}, discardInstruments().Logger)

	require.IsType(t, &placesworkflows.TemporalPlaceWorkflows{}, orchestrator)
	closeFn()
	c.AssertExpectations(t)
}

func TestNewPlaceWorkflows_DialFailureStaysInline(t *testing.T) {
	backend := NewMemoryBackend()
	defer backend.Close()
	backend.Kind = DatastoreMongo
	services := memoryServices(t, backend)

	orchestrator, closeFn := NewPlaceWorkflows(backend, services.Places, func() (client.Client, error) {
		return nil, errors.New("connection refused")
	}, discardInstruments().Logger)
	defer closeFn()

	require.IsType(t, &placesworkflows.InlinePlaceWorkflows{}, orchestrator)
}
