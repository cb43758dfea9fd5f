package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinDescriptionLength is the shortest description accepted on create and update.
const MinDescriptionLength = 5

var (
	ErrEmptyTitle       = errors.New("place title is required")
	ErrShortDescription = errors.New("place description must be at least 5 characters")
	ErrEmptyAddress     = errors.New("place address is required")
	ErrEmptyCreator     = errors.New("place creator is required")
)

// Location is a geographic coordinate pair.
type Location struct {
	Lat float64
	Lng float64
}

// Place is the aggregate managed by the places bounded context.
type Place struct {
	ID          string
	Title       string
	Description string
	Address     string
	Location    Location
	Image       string
	CreatorID   string
}

// NewPlace validates the invariants and builds a place with a fresh id.
func NewPlace(title, description, address string, location Location, image, creatorID string) (*Place, error) {
	p := &Place{ID: uuid.NewString(), Location: location, Image: strings.TrimSpace(image)}
	if err := p.UpdateDetails(title, description); err != nil {
		return nil, err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	p.Address = address
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return nil, ErrEmptyCreator
	}
	p.CreatorID = creatorID
	return p, nil
}

// UpdateDetails replaces the only mutable fields.
func (p *Place) UpdateDetails(title, description string) error {
	if err := ValidateDetails(title, description); err != nil {
		return err
	}
	p.Title = title
	p.Description = description
	return nil
}

// ValidateDetails checks a title/description pair without mutating anything.
func ValidateDetails(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return ErrShortDescription
	}
	return nil
}
