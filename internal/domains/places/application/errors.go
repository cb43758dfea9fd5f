package application

import (
	"errors"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

// Client-facing messages, one per failure site.
const (
	MsgPlaceNotFound      = "Could not find a place for the provided id."
	MsgFindPlaceFailed    = "Something went wrong, could not find a place."
	MsgFetchPlacesFailed  = "Fetching places failed, please try again later."
	MsgUserPlacesNotFound = "Could not find places for the provided user id."
	MsgCreateFailed       = "Creating place failed, please try again."
	MsgCreatorNotFound    = "Could not find user for provided id."
	MsgAddressNotFound    = "Could not find location for the specified address."
	MsgUpdateFailed       = "Something went wrong, could not update place."
	MsgPlaceNotFoundForID = "Could not find place for this id."
	MsgDeleteFailed       = "Something went wrong, could not delete place."
	MsgInvalidInputs      = "Invalid inputs passed, please check your data."
)

func isDomainValidation(err error) bool {
	return errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrShortDescription) ||
		errors.Is(err, domain.ErrEmptyAddress) ||
		errors.Is(err, domain.ErrEmptyCreator)
}

func mapInputError(err error, fallback string) error {
	if isDomainValidation(err) {
		return apierrors.Validation(MsgInvalidInputs, err)
	}
	return apierrors.Internal(fallback, err)
}
