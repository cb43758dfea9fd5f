package domain

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("email must be a valid address")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
)

// MinPasswordLength mirrors the validation gate on signup.
const MinPasswordLength = 6

// User is an account that owns places.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Image    string
	PlaceIDs []string
}

// NewUser builds an account with a fresh id and an empty place set.
func NewUser(name, email, password, image string) (*User, error) {
	user := &User{ID: uuid.NewString(), Image: strings.TrimSpace(image), PlaceIDs: []string{}}
	if err := user.Rename(name); err != nil {
		return nil, err
	}
	if err := user.ChangeEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// Rename trims and validates the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// ChangeEmail normalizes and validates the login email.
func (u *User) ChangeEmail(email string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	u.Email = normalized
	return nil
}

// SetPassword stores the credential verbatim after a length check.
// Hashing, when enabled, happens before the value reaches the domain.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	u.Password = password
	return nil
}

// Sanitized returns a copy without the credential, for anything leaving the service.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := u.Clone()
	clone.Password = ""
	return clone
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PlaceIDs = append([]string{}, u.PlaceIDs...)
	return &clone
}

// NormalizeEmail trims and lowercases an address and rejects malformed ones.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidEmail
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
