package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/credentials"
	usermemory "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

type failingUserRepo struct {
	err error
}

func (f failingUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, f.err
}

func (f failingUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, f.err
}

func (f failingUserRepo) List(context.Context) ([]*domain.User, error) { return nil, f.err }

func requireKind(t *testing.T, err error, kind apierrors.Kind, message string) {
	t.Helper()
	appErr, ok := apierrors.As(err)
	require.True(t, ok, "expected typed error, got %v", err)
	require.Equal(t, kind, appErr.Kind)
	require.Equal(t, message, appErr.Message)
}

func TestSignupAndLogin(t *testing.T) {
	svc := NewService(usermemory.NewRepository(nil))
	ctx := context.Background()

	created, err := svc.Signup(ctx, ports.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, DefaultAvatar, created.Image)
	require.Empty(t, created.PlaceIDs)
	require.Empty(t, created.Password, "signup response never exposes the credential")

	require.NoError(t, svc.Login(ctx, ports.LoginInput{Email: "alice@example.com", Password: "secret1"}))
}

func TestSignup_DuplicateEmailRejectedWithoutSecondUser(t *testing.T) {
	repo := usermemory.NewRepository(nil)
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Signup(ctx, ports.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, ports.SignupInput{Name: "Other", Email: "ALICE@example.com", Password: "secret2"})
	requireKind(t, err, apierrors.KindValidation, MsgUserExists)

	users, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestSignup_InvalidInput(t *testing.T) {
	svc := NewService(usermemory.NewRepository(nil))
	_, err := svc.Signup(context.Background(), ports.SignupInput{Name: "Alice", Email: "nope", Password: "secret1"})
	requireKind(t, err, apierrors.KindValidation, MsgInvalidInputs)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestSignup_DatastoreFailureIsInternal(t *testing.T) {
	svc := NewService(failingUserRepo{err: errors.New("connection reset")})
	_, err := svc.Signup(context.Background(), ports.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	requireKind(t, err, apierrors.KindInternal, MsgSignupFailed)
}

func TestLogin_SucceedsOnlyOnExactMatch(t *testing.T) {
	svc := NewService(usermemory.NewRepository(nil))
	ctx := context.Background()
	_, err := svc.Signup(ctx, ports.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	cases := []struct {
		name     string
		email    string
		password string
		ok       bool
	}{
		{"exact", "alice@example.com", "secret1", true},
		{"wrong password", "alice@example.com", "secret2", false},
		{"case differs", "alice@example.com", "SECRET1", false},
		{"trailing space", "alice@example.com", "secret1 ", false},
		{"unknown account", "bob@example.com", "secret1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Login(ctx, ports.LoginInput{Email: tc.email, Password: tc.password})
			if tc.ok {
				require.NoError(t, err)
				return
			}
			requireKind(t, err, apierrors.KindUnauthorized, MsgInvalidCredentials)
		})
	}
}

func TestLogin_DatastoreFailureIsInternal(t *testing.T) {
	svc := NewService(failingUserRepo{err: errors.New("timeout")})
	err := svc.Login(context.Background(), ports.LoginInput{Email: "alice@example.com", Password: "secret1"})
	requireKind(t, err, apierrors.KindInternal, MsgLoginFailed)
}

func TestEmailIsNormalizedForSignupAndLogin(t *testing.T) {
	repo := usermemory.NewRepository(nil)
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Signup(ctx, ports.SignupInput{Name: "Alice", Email: " Alice@Example.COM ", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", created.Email)

	require.NoError(t, svc.Login(ctx, ports.LoginInput{Email: "ALICE@example.com", Password: "secret1"}))
	_, err = svc.Signup(ctx, ports.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.Error(t, err)
}

func TestDefaultPolicy_StoresPasswordVerbatim(t *testing.T) {
	repo := usermemory.NewRepository(nil)
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Signup(ctx, ports.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	stored, err := repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	require.Equal(t, "secret1", stored.Password)
	require.Error(t, svc.Login(ctx, ports.LoginInput{Email: "alice@example.com", Password: "Secret1"}))
}

func TestBcryptPolicy_StoresHash(t *testing.T) {
	repo := usermemory.NewRepository(nil)
	svc := NewService(repo, WithCredentialPolicy(credentials.Bcrypt{Cost: bcrypt.MinCost}))
	ctx := context.Background()

	created, err := svc.Signup(ctx, ports.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	stored, err := repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	require.NotEqual(t, "secret1", stored.Password)

	require.NoError(t, svc.Login(ctx, ports.LoginInput{Email: "alice@example.com", Password: "secret1"}))
	require.Error(t, svc.Login(ctx, ports.LoginInput{Email: "alice@example.com", Password: stored.Password}))
}

func TestListAll_EmptyStoreIsEmptyList(t *testing.T) {
	svc := NewService(usermemory.NewRepository(nil))
	users, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestListAll_DatastoreFailureIsInternal(t *testing.T) {
	svc := NewService(failingUserRepo{err: errors.New("down")})
	_, err := svc.ListAll(context.Background())
	requireKind(t, err, apierrors.KindInternal, MsgFetchUsersFailed)
}
