package memory

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-places-api/internal/platform/memdb"
)

// Collection is the memdb collection holding domain.User values.
const Collection = "users"

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for local runs and tests.
type Repository struct {
	db *memdb.DB
}

// NewRepository binds the repository to a shared store. A nil store gets a private one.
func NewRepository(db *memdb.DB) *Repository {
	if db == nil {
		db = memdb.New()
	}
	return &Repository{db: db}
}

// Create inserts a user, rejecting a taken email.
func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("cannot save nil user")
	}
	stored := *user.Clone()
	err := r.db.Update(func(tx *memdb.Tx) error {
		if _, ok := tx.Get(Collection, stored.ID); ok {
			return errors.New("user id already exists")
		}
		if _, ok := findByEmail(tx, stored.Email); ok {
			return ports.ErrDuplicateEmail
		}
		return tx.Put(Collection, stored.ID, stored)
	})
	if err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

// GetByEmail fetches a user by normalized email.
func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	var found *domain.User
	err := r.db.View(func(tx *memdb.Tx) error {
		user, ok := findByEmail(tx, email)
		if !ok {
			return ports.ErrNotFound
		}
		found = user.Clone()
		return nil
	})
	return found, err
}

// List returns all users without credentials, in id order.
func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	err := r.db.View(func(tx *memdb.Tx) error {
		tx.Scan(Collection, func(_ string, value any) bool {
			user := value.(domain.User)
			users = append(users, user.Sanitized())
			return true
		})
		return nil
	})
	return users, err
}

func findByEmail(tx *memdb.Tx, email string) (domain.User, bool) {
	var (
		match domain.User
		found bool
	)
	tx.Scan(Collection, func(_ string, value any) bool {
		user := value.(domain.User)
		if user.Email == email {
			match, found = user, true
			return false
		}
		return true
	})
	return match, found
}
