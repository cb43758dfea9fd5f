package places

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	placeports "github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

// CreatePlaceActivityName stores a place and attaches it to its creator.
const CreatePlaceActivityName = "places.activities.CreatePlace"

// Activities groups activities that operate on the places bounded context.
type Activities struct {
	service placeports.Service
}

// NewActivities wires the places service into the Temporal activities bundle.
func NewActivities(service placeports.Service) *Activities {
	return &Activities{service: service}
}

// CreatePlace runs the create use case. Failures are returned as
// non-retryable application errors whose type is the error kind.
func (a *Activities) CreatePlace(ctx context.Context, input placetypes.CreatePlaceInput) (*placetypes.PlaceProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place create activity not initialized", "creatorId", input.CreatorID)
		return nil, temporal.NewNonRetryableApplicationError("place create activity not initialized", apierrors.KindInternal.String(), nil)
	}
	logger.Info("CreatePlace activity started", "creatorId", input.CreatorID)
	projection, err := a.service.Create(ctx, input)
	if err != nil {
		logger.Error("CreatePlace activity failed", "creatorId", input.CreatorID, "error", err)
		return nil, toApplicationError(err)
	}
	if projection != nil && projection.Entity != nil {
		logger.Info("CreatePlace activity completed", "placeId", projection.Entity.ID)
	}
	return projection, nil
}

func toApplicationError(err error) error {
	appErr, ok := apierrors.As(err)
	if !ok {
		return temporal.NewNonRetryableApplicationError(apierrors.UnknownErrorMessage, apierrors.KindInternal.String(), err)
	}
	return temporal.NewNonRetryableApplicationError(appErr.Message, appErr.Kind.String(), appErr.Err)
}

// ErrorFromTemporal restores the typed application error carried by a failed
// activity. Errors without an application failure are returned unchanged.
func ErrorFromTemporal(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	return apierrors.New(apierrors.ParseKind(appErr.Type()), appErr.Message(), err)
}
