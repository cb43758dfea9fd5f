package mapper

import (
	"time"

	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
)

// Location is the transport-level coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is the transport-level place payload.
type Place struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Address     string    `json:"address"`
	Location    Location  `json:"location"`
	Creator     string    `json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreatePlaceRequest is the body of POST /api/places.
type CreatePlaceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
	Address     string `json:"address" binding:"required"`
	Creator     string `json:"creator" binding:"required"`
}

// UpdatePlaceRequest is the body of PATCH /api/places/:pid.
type UpdatePlaceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
}

// ToCreateInput converts a create request into the application input.
func ToCreateInput(req CreatePlaceRequest) placetypes.CreatePlaceInput {
	return placetypes.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		CreatorID:   req.Creator,
	}
}

// ToUpdateInput converts an update request into the application input.
func ToUpdateInput(id string, req UpdatePlaceRequest) placetypes.UpdatePlaceInput {
	return placetypes.UpdatePlaceInput{ID: id, Title: req.Title, Description: req.Description}
}

// FromProjection converts a projection into a transport representation.
func FromProjection(projection *placetypes.PlaceProjection) Place {
	if projection == nil || projection.Entity == nil {
		return Place{}
	}
	place := projection.Entity
	return Place{
		ID:          place.ID,
		Title:       place.Title,
		Description: place.Description,
		Image:       place.Image,
		Address:     place.Address,
		Location:    Location{Lat: place.Location.Lat, Lng: place.Location.Lng},
		Creator:     place.CreatorID,
		CreatedAt:   projection.Metadata.CreatedAt,
		UpdatedAt:   projection.Metadata.UpdatedAt,
	}
}

// FromProjections converts a slice of projections.
func FromProjections(projections []*placetypes.PlaceProjection) []Place {
	result := make([]Place, 0, len(projections))
	for _, projection := range projections {
		result = append(result, FromProjection(projection))
	}
	return result
}
