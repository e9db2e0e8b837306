package dto

import (
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
)

// RegisterRequest represents the API request for opening an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=60"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Username string `json:"username" binding:"required,max=60"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the API request for a login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	Credits         int64     `json:"credits"`
	IsAdmin         bool      `json:"is_admin"`
	LastCreditReset time.Time `json:"last_credit_reset"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewUserResponse maps a user entity to its response shape
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Username:        user.Username,
		Credits:         user.Credits(),
		IsAdmin:         user.IsAdmin,
		LastCreditReset: user.LastCreditReset,
		CreatedAt:       user.CreatedAt,
	}
}

// NewUserResponses maps a list of users
func NewUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// TokenResponse is returned by register and login
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// NewTokenResponse maps an auth result to its response shape
func NewTokenResponse(result *usecase.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: result.Token,
		TokenType:   result.TokenType,
		ExpiresAt:   result.ExpiresAt,
		User:        NewUserResponse(result.User),
	}
}
