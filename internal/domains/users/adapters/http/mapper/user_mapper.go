package mapper

import userdomain "github.com/Apurer/go-gin-places-api/internal/domains/users/domain"

// User is the transport-level user payload. It has no credential field.
type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Image  string   `json:"image"`
	Places []string `json:"places"`
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{Places: []string{}}
	}
	places := append([]string{}, user.PlaceIDs...)
	return User{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Image:  user.Image,
		Places: places,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
