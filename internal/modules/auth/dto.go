package auth

import "dieselx/internal/domain"

type RegisterRequest struct {
	OrganizationName string `json:"organization_name" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone"`
	Password         string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token          string       `json:"token"`
	User           *domain.User `json:"user"`
	OrganizationID string       `json:"organization_id"`
	Role           string       `json:"role"`
}
