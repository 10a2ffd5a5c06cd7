package model

import "time"

type RegisterRequest struct {
	Username         string `json:"username" validate:"required,min=3,max=150"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Phone            string `json:"phone" validate:"omitempty,max=20"`
	Password         string `json:"password" validate:"required,min=8,max=128"`
	Role             string `json:"role" validate:"required,oneof=driver client"`
	LicenseNumber    string `json:"license_number" validate:"omitempty,max=50"`
	FrequentLocation string `json:"frequent_location" validate:"omitempty,max=100"`
}

// LoginRequest accepts a username or an email as Identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=254"`
	Password   string `json:"password" validate:"required,max=128"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type TokensResponse struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type AuthUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	Tokens TokensResponse   `json:"tokens"`
	User   AuthUserResponse `json:"user"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	ProfileID string    `json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`
}

type DriverResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user"`
	LicenseNumber    string    `json:"license_number"`
	FrequentLocation string    `json:"frequent_location"`
	PersonalIDURL    string    `json:"personal_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ClientResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type GetByIDRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

type UpdateDriverRequest struct {
	ID               string  `json:"-" validate:"required,uuid"`
	LicenseNumber    *string `json:"license_number" validate:"omitempty,max=50"`
	FrequentLocation *string `json:"frequent_location" validate:"omitempty,max=100"`
}

type UploadIdentityDocumentRequest struct {
	DriverID string      `validate:"required,uuid"`
	File     *FileUpload `validate:"required"`
}
