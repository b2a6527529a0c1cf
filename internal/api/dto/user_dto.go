package dto

import (
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"
	"reviewhub/internal/permission"
)

// CreateUserDTO for the admin user-management endpoints
type CreateUserDTO struct {
	Email     string  `json:"email" binding:"required,email"`
	Username  *string `json:"username,omitempty" binding:"omitempty,max=200"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Role      string  `json:"role,omitempty"`
}

// Input converts the DTO to the service input.
func (d CreateUserDTO) Input() service.CreateUserInput {
	return service.CreateUserInput{
		Email:     d.Email,
		Username:  d.Username,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Bio:       d.Bio,
		Role:      permission.Role(d.Role),
	}
}

// UpdateUserDTO for admin partial updates
type UpdateUserDTO struct {
	Email     string  `json:"email,omitempty" binding:"omitempty,email"`
	Username  *string `json:"username,omitempty" binding:"omitempty,max=200"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Role      string  `json:"role,omitempty"`
}

// Input converts the DTO to the service input.
func (d UpdateUserDTO) Input() service.CreateUserInput {
	return service.CreateUserInput{
		Email:     d.Email,
		Username:  d.Username,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Bio:       d.Bio,
		Role:      permission.Role(d.Role),
	}
}

// UpdateProfileDTO for the self-service "me" path. No role field: a user
// cannot elevate themselves.
type UpdateProfileDTO struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,max=200"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// Input converts the DTO to the service input.
func (d UpdateProfileDTO) Input() service.UpdateProfileInput {
	return service.UpdateProfileInput{
		Username:  d.Username,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Bio:       d.Bio,
	}
}

// UserResponse is the read shape for user records.
type UserResponse struct {
	Username  *string `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      string  `json:"role"`
}

// FromModelToUserResponse converts a User model to UserResponse.
func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      string(user.Role),
	}
}
