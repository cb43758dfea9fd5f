package mapper

import userports "github.com/Apurer/go-gin-places-api/internal/domains/users/ports"

// SignupRequest is the body of POST /api/users/signup.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ToSignupInput(req SignupRequest) userports.SignupInput {
	return userports.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password}
}

func ToLoginInput(req LoginRequest) userports.LoginInput {
	return userports.LoginInput{Email: req.Email, Password: req.Password}
}
