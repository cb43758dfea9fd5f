package placesserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

// MsgRouteNotFound answers every unmatched request.
const MsgRouteNotFound = "Could not find this route."

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	// Routes for the places part of the API
	PlaceAPI PlaceAPI
	// Routes for the users part of the API
	UserAPI UserAPI
}

// NewRouter returns a new router with recovery and request ids installed.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds the API routes and the not-found fallback to router.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	registerJSONFieldNames()
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	router.NoRoute(NotFoundHandleFunc)
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// NotFoundHandleFunc answers unmatched routes.
func NotFoundHandleFunc(c *gin.Context) {
	apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(MsgRouteNotFound))
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"GetPlaceByID",
			http.MethodGet,
			"/api/places/:pid",
			handleFunctions.PlaceAPI.GetPlaceByID,
		},
		{
			"GetPlacesByUserID",
			http.MethodGet,
			"/api/places/user/:uid",
			handleFunctions.PlaceAPI.GetPlacesByUserID,
		},
		{
			"CreatePlace",
			http.MethodPost,
			"/api/places",
			handleFunctions.PlaceAPI.CreatePlace,
		},
		{
			"UpdatePlace",
			http.MethodPatch,
			"/api/places/:pid",
			handleFunctions.PlaceAPI.UpdatePlace,
		},
		{
			"DeletePlace",
			http.MethodDelete,
			"/api/places/:pid",
			handleFunctions.PlaceAPI.DeletePlace,
		},
		{
			"GetUsers",
			http.MethodGet,
			"/api/users",
			handleFunctions.UserAPI.GetUsers,
		},
		{
			"Signup",
			http.MethodPost,
			"/api/users/signup",
			handleFunctions.UserAPI.Signup,
		},
		{
			"Login",
			http.MethodPost,
			"/api/users/login",
			handleFunctions.UserAPI.Login,
		},
	}
}
