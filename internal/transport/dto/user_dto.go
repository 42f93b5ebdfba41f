package dto

import (
	"time"

	"github.com/google/uuid"
)

// SendOTPRequest requests a signup verification code.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SignupRequest creates an account. Name fields required depend on accountType.
type SignupRequest struct {
	FirstName       string `json:"firstName" validate:"max=100"`
	LastName        string `json:"lastName" validate:"max=100"`
	CompanyName     string `json:"companyName" validate:"max=200"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	AccountType     string `json:"accountType" validate:"required,account_type"`
	ContactNumber   string `json:"contactNumber" validate:"max=30"`
	OTP             string `json:"otp" validate:"required,len=6,numeric"`
}

// LoginRequest defines the structure for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an identity. It never carries the password hash.
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty"`
	CompanyName   string    `json:"companyName,omitempty"`
	Email         string    `json:"email"`
	AccountType   string    `json:"accountType"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	ProfilePhoto  string    `json:"profilePhoto,omitempty"`
	CompanyLogo   string    `json:"companyLogo,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
