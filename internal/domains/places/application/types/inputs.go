package types

// CreatePlaceInput carries a validated create request.
type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	CreatorID   string
}

// UpdatePlaceInput carries the only mutable fields of a place.
type UpdatePlaceInput struct {
	ID          string
	Title       string
	Description string
}

// PlaceIdentifier addresses a single place.
type PlaceIdentifier struct {
	ID string
}

// UserIdentifier addresses the places owned by a user.
type UserIdentifier struct {
	UserID string
}
