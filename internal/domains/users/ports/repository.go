package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user email already registered")
)

// Repository persists user accounts.
type Repository interface {
	// Create inserts a new user. ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns every user with the credential field left empty.
	List(ctx context.Context) ([]*domain.User, error)
}
