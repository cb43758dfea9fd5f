package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

// DefaultAvatar is assigned to every new account.
const DefaultAvatar = "https://live.staticflickr.com/7631/26849088292_36fc52ee90_b.jpg"

// Service exposes user bounded context use cases.
type Service struct {
	repo        ports.Repository
	credentials ports.CredentialPolicy
	avatar      string
}

type Option func(*Service)

// WithCredentialPolicy replaces the default plaintext policy.
func WithCredentialPolicy(policy ports.CredentialPolicy) Option {
	return func(s *Service) {
		if policy != nil {
			s.credentials = policy
		}
	}
}

// WithDefaultAvatar overrides the image given to new accounts.
func WithDefaultAvatar(uri string) Option {
	return func(s *Service) {
		if uri != "" {
			s.avatar = uri
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, credentials: ports.PlaintextPolicy{}, avatar: DefaultAvatar}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListAll returns every account without credentials. No users is an empty list.
func (s *Service) ListAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierrors.Internal(MsgFetchUsersFailed, err)
	}
	result := make([]*domain.User, 0, len(users))
	for _, user := range users {
		result = append(result, user.Sanitized())
	}
	return result, nil
}

// Signup registers a new account after checking the email is free.
func (s *Service) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Name, input.Email, input.Password, s.avatar)
	if err != nil {
		if isDomainValidation(err) {
			return nil, invalidInput(err)
		}
		return nil, apierrors.Internal(MsgSignupFailed, err)
	}

	existing, err := s.repo.GetByEmail(ctx, user.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apierrors.Validation(MsgUserExists, ports.ErrDuplicateEmail)
	case err != nil && !errors.Is(err, ports.ErrNotFound):
		return nil, apierrors.Internal(MsgSignupFailed, err)
	}

	sealed, err := s.credentials.Seal(user.Password)
	if err != nil {
		return nil, apierrors.Internal(MsgSignupFailed, err)
	}
	user.Password = sealed

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, ports.ErrDuplicateEmail) {
			return nil, apierrors.Validation(MsgUserExists, err)
		}
		return nil, apierrors.Internal(MsgSignupFailed, err)
	}
	return created.Sanitized(), nil
}

// Login checks the supplied credential. Success carries no session.
func (s *Service) Login(ctx context.Context, input ports.LoginInput) error {
	email, err := domain.NormalizeEmail(input.Email)
	if err != nil {
		return apierrors.Unauthorized(MsgInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return apierrors.Unauthorized(MsgInvalidCredentials)
		}
		return apierrors.Internal(MsgLoginFailed, err)
	}
	if !s.credentials.Matches(user.Password, input.Password) {
		return apierrors.Unauthorized(MsgInvalidCredentials)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
