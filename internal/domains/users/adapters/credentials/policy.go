// Package credentials implements the password storage policies selectable at startup.
package credentials

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
)

const (
	PolicyPlaintext = "plaintext"
	PolicyBcrypt    = "bcrypt"
)

var (
	_ ports.CredentialPolicy = ports.PlaintextPolicy{}
	_ ports.CredentialPolicy = Bcrypt{}
)

// Bcrypt stores bcrypt hashes.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Seal(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (Bcrypt) Matches(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// FromName resolves a configured policy name. Empty means plaintext.
func FromName(name string) (ports.CredentialPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyPlaintext:
		return ports.PlaintextPolicy{}, nil
	case PolicyBcrypt:
		return Bcrypt{}, nil
	default:
		return nil, fmt.Errorf("unknown credential policy %q", name)
	}
}
