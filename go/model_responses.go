package placesserver

import (
	placemapper "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/http/mapper"
	usermapper "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/http/mapper"
)

// PlaceResponse wraps a single place.
type PlaceResponse struct {
	Message string            `json:"message,omitempty"`
	Place   placemapper.Place `json:"place"`
}

// PlacesResponse wraps the places of one user.
type PlacesResponse struct {
	Places []placemapper.Place `json:"places"`
}

// UsersResponse wraps the user listing.
type UsersResponse struct {
	Users []usermapper.User `json:"users"`
}

// UserResponse wraps a freshly created user.
type UserResponse struct {
	Message string          `json:"message"`
	User    usermapper.User `json:"user"`
}

// MessageResponse is returned by operations without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}
