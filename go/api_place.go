package placesserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	placemapper "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/http/mapper"
	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	placeports "github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
)

const (
	MsgPlaceAdded   = "Place added successfully"
	MsgPlaceUpdated = "Place Updated"
	MsgPlaceDeleted = "Place deleted"
)

// PlaceAPI implements the places section of the API.
type PlaceAPI struct {
	service   placeports.Service
	workflows placeports.WorkflowOrchestrator
}

// NewPlaceAPI wires dependencies. Creation goes through workflows.
func NewPlaceAPI(service placeports.Service, workflows placeports.WorkflowOrchestrator) PlaceAPI {
	return PlaceAPI{service: service, workflows: workflows}
}

// Get /api/places/:pid
// Find place by ID
func (api *PlaceAPI) GetPlaceByID(c *gin.Context) {
	result, err := api.service.GetByID(c.Request.Context(), placetypes.PlaceIdentifier{ID: c.Param("pid")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PlaceResponse{Place: placemapper.FromProjection(result)})
}

// Get /api/places/user/:uid
// Find the places created by a user
func (api *PlaceAPI) GetPlacesByUserID(c *gin.Context) {
	results, err := api.service.GetByUser(c.Request.Context(), placetypes.UserIdentifier{UserID: c.Param("uid")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PlacesResponse{Places: placemapper.FromProjections(results)})
}

// Post /api/places
// Add a new place
func (api *PlaceAPI) CreatePlace(c *gin.Context) {
	var payload placemapper.CreatePlaceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	result, err := api.workflows.CreatePlace(c.Request.Context(), placemapper.ToCreateInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, PlaceResponse{Message: MsgPlaceAdded, Place: placemapper.FromProjection(result)})
}

// Patch /api/places/:pid
// Update the title and description of a place
func (api *PlaceAPI) UpdatePlace(c *gin.Context) {
	var payload placemapper.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	if err := api.service.Update(c.Request.Context(), placemapper.ToUpdateInput(c.Param("pid"), payload)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: MsgPlaceUpdated})
}

// Delete /api/places/:pid
// Delete a place
func (api *PlaceAPI) DeletePlace(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), placetypes.PlaceIdentifier{ID: c.Param("pid")}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: MsgPlaceDeleted})
}
