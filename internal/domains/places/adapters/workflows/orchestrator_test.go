package workflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

type recordingOrchestrator struct {
	calls int
}

func (r *recordingOrchestrator) CreatePlace(_ context.Context, input placetypes.CreatePlaceInput) (*placetypes.PlaceProjection, error) {
	r.calls++
	return placetypes.NewPlaceProjection(&domain.Place{ID: "inline", Title: input.Title}, time.Time{}, time.Time{}), nil
}

var createInput = placetypes.CreatePlaceInput{Title: "Eiffel", Description: "Iron tower", Address: "Paris", CreatorID: "u1"}

func TestTemporalPlaceWorkflows_ReturnsWorkflowResult(t *testing.T) {
	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(1).(*placetypes.PlaceProjection)
		*out = *placetypes.NewPlaceProjection(&domain.Place{ID: "p1", Title: "Eiffel"}, time.Time{}, time.Time{})
	}).Return(nil)
	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil)

	result, err := NewTemporalPlaceWorkflows(c).CreatePlace(context.Background(), createInput)
	require.NoError(t, err)
	require.Equal(t, "p1", result.Entity.ID)
	c.AssertExpectations(t)
}

func TestTemporalPlaceWorkflows_RestoresTypedError(t *testing.T) {
	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, mock.Anything).Return(
		temporal.NewNonRetryableApplicationError("Could not find user for provided id.", apierrors.KindNotFound.String(), nil),
	)
	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil)

	_, err := NewTemporalPlaceWorkflows(c).CreatePlace(context.Background(), createInput)
	appErr, ok := apierrors.As(err)
	require.True(t, ok)
	require.Equal(t, apierrors.KindNotFound, appErr.Kind)
	require.Equal(t, "Could not find user for provided id.", appErr.Message)
}

func TestTemporalPlaceWorkflows_FallsBackWhileUnavailable(t *testing.T) {
	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewUnavailable("frontend down"))
	fallback := &recordingOrchestrator{}

	result, err := NewTemporalPlaceWorkflows(c).WithFallback(fallback).CreatePlace(context.Background(), createInput)
	require.NoError(t, err)
	require.Equal(t, "inline", result.Entity.ID)
	require.Equal(t, 1, fallback.calls)
}

func TestTemporalPlaceWorkflows_StartFailureWithoutFallback(t *testing.T) {
	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("namespace not found"))

	_, err := NewTemporalPlaceWorkflows(c).CreatePlace(context.Background(), createInput)
	require.EqualError(t, err, "namespace not found")
}
