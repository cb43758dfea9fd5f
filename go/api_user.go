package placesserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
)

const (
	MsgUserCreated = "User Created"
	MsgLoggedIn    = "Logged in!"
)

// UserAPI implements the users section of the API.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Get /api/users
// List all users without credentials
func (api *UserAPI) GetUsers(c *gin.Context) {
	users, err := api.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, UsersResponse{Users: usermapper.FromDomainUsers(users)})
}

// Post /api/users/signup
// Register a new user
func (api *UserAPI) Signup(c *gin.Context) {
	var payload usermapper.SignupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	user, err := api.service.Signup(c.Request.Context(), usermapper.ToSignupInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UserResponse{Message: MsgUserCreated, User: usermapper.FromDomainUser(user)})
}

// Post /api/users/login
// Check credentials
func (api *UserAPI) Login(c *gin.Context) {
	var payload usermapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	if err := api.service.Login(c.Request.Context(), usermapper.ToLoginInput(payload)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: MsgLoggedIn})
}
