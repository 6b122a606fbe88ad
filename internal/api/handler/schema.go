package handler

import "github.com/gourmetcare/platform/internal/core/domain"

// apiResponse is the standard success envelope: a success flag, a
// human-readable message, and the payload.
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// --- Auth request / response types ---

type sendCodeRequest struct {
	Email       string `json:"email"        validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,numeric,len=10"`
}

type sendCodeResponse struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	// Code is echoed outside production only, as a development convenience.
	Code string `json:"code,omitempty"`
}

type registerRequest struct {
	FirstName   string `json:"first_name"   validate:"required,min=2,max=50"`
	LastName    string `json:"last_name"    validate:"required,min=2,max=50"`
	Email       string `json:"email"        validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,numeric,len=10"`
	Code        string `json:"code"         validate:"required"`
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required"`
}

type authData struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// --- User request types ---

type updateProfileRequest struct {
	FirstName   string `json:"first_name"   validate:"omitempty,min=2,max=50"`
	LastName    string `json:"last_name"    validate:"omitempty,min=2,max=50"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,numeric,len=10"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user technician manager admin superAdmin"`
}
