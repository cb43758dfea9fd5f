package ports

// CredentialPolicy decides how passwords are stored at signup and checked at login.
type CredentialPolicy interface {
	// Seal turns the supplied password into the value persisted on the user.
	Seal(password string) (string, error)
	// Matches reports whether the supplied password satisfies the stored value.
	Matches(stored, supplied string) bool
}

// PlaintextPolicy stores passwords verbatim and compares them byte for byte.
// It is the default, for compatibility with accounts created by the legacy backend.
type PlaintextPolicy struct{}

func (PlaintextPolicy) Seal(password string) (string, error) { return password, nil }

func (PlaintextPolicy) Matches(stored, supplied string) bool { return stored == supplied }
