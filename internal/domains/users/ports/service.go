package ports

import (
	"context"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
)

// SignupInput carries an already-validated registration request.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	ListAll(ctx context.Context) ([]*domain.User, error)
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) error
}
