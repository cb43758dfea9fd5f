package application

import (
	"errors"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

// Client-facing messages, one per failure site.
const (
	MsgFetchUsersFailed   = "Could not fetch users, please try again later."
	MsgSignupFailed       = "Signing up failed, please try again later."
	MsgUserExists         = "User already exists, try again with another email."
	MsgInvalidInputs      = "Invalid inputs passed, please check your data."
	MsgLoginFailed        = "Logging in failed, please try again later."
	MsgInvalidCredentials = "Invalid credentials, could not log you in."
)

func isDomainValidation(err error) bool {
	return errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword)
}

func invalidInput(err error) error {
	return apierrors.Validation(MsgInvalidInputs, err)
}
