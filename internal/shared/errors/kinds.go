package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an application failure independently of the transport.
type Kind int

const (
	// KindInternal covers datastore failures and anything unclassified.
	KindInternal Kind = iota
	// KindValidation covers rejected input and domain conflicts.
	KindValidation
	// KindNotFound covers references to entities that do not exist.
	KindNotFound
	// KindUnauthorized covers credential mismatches.
	KindUnauthorized
)

var kindNames = map[Kind]string{
	KindInternal:     "internal",
	KindValidation:   "validation_failed",
	KindNotFound:     "not_found",
	KindUnauthorized: "unauthorized",
}

// String returns the stable name of the kind, used when errors cross process boundaries.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInternal]
}

// ParseKind is the inverse of Kind.String. Unknown names map to KindInternal.
func ParseKind(name string) Kind {
	for kind, candidate := range kindNames {
		if candidate == name {
			return kind
		}
	}
	return KindInternal
}

// Error is a typed application failure carrying the single message shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a typed error of the given kind.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Validation reports rejected input or a domain conflict.
func Validation(message string, cause error) *Error {
	return New(KindValidation, message, cause)
}

// NotFound reports a missing entity.
func NotFound(message string, cause error) *Error {
	return New(KindNotFound, message, cause)
}

// Unauthorized reports a failed credential check.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message, nil)
}

// Internal reports a datastore or otherwise unexpected failure.
func Internal(message string, cause error) *Error {
	return New(KindInternal, message, cause)
}

// As extracts the typed application error from err, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the kind of err. Untyped errors are internal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// ProblemFromError renders any error as a problem. Untyped errors become a
// generic 500 so raw datastore messages never reach the client.
func ProblemFromError(err error) ProblemDetail {
	var problem ProblemDetail
	if stderrors.As(err, &problem) {
		return problem
	}
	appErr, ok := As(err)
	if !ok {
		return ErrInternal.WithDetail(UnknownErrorMessage)
	}
	switch appErr.Kind {
	case KindValidation:
		return ErrValidation.WithDetail(appErr.Message)
	case KindNotFound:
		return ErrNotFound.WithDetail(appErr.Message)
	case KindUnauthorized:
		return ErrUnauthorized.WithDetail(appErr.Message)
	default:
		return ErrInternal.WithDetail(appErr.Message)
	}
}

// UnknownErrorMessage is the client message for failures nobody classified.
const UnknownErrorMessage = "An unknown error occurred!"
