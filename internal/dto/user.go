package dto

import (
	"time"

	"github.com/finbook/finbook_backend/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a new user.
// Password length bounds follow bcrypt's 72-byte input limit.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=64"`
	Email    string `json:"email" binding:"required,email,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UserResponse defines the data returned for a user. The credential hash
// never leaves the service layer.
type UserResponse struct {
	UserID    int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
