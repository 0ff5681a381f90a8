package dto

import (
	"time"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// LoginRequest is the credential payload for session issuance.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse carries the signed session token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserCreateRequest provisions a user inside the caller's organization.
type UserCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN STAFF CUSTOMER PARTNER"`
}

// UserResponse is the serialized representation of a user.
type UserResponse struct {
	ID             uint      `json:"id"`
	OrganizationID uint      `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUserResponse converts a user model to a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:             model.ID,
		OrganizationID: model.OrganizationID,
		Name:           model.Name,
		Email:          model.Email,
		Role:           model.Role,
		CreatedAt:      model.CreatedAt,
	}
}

// NewUserResponseSlice converts a slice of users to DTOs.
func NewUserResponseSlice(items []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewUserResponse(item))
	}
	return out
}
