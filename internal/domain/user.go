package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionInvalid     = errors.New("session is invalid or already revoked")
	ErrPasswordMismatch   = errors.New("passwords are missing or do not match")
	ErrImageRequired      = errors.New("image is required")
	ErrCodeInvalid        = errors.New("verification code is invalid")
	ErrCodeExpired        = errors.New("verification code has expired")
	ErrOTPRateLimited     = errors.New("verification code was requested too recently")
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Image is a reference to an object in the image store.
type Image struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Upload is a file received from a multipart request, not yet stored.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// VerificationCode is a pending one-time password-reset code.
// Codes are single-use: every consumption path clears the stored code.
type VerificationCode struct {
	Code      string
	CreatedAt time.Time
}

type User struct {
	ID           string
	Name         string
	Email        string
	Password     string // bcrypt hash, never serialized
	Role         string
	Images       []Image
	Deleted      bool
	Verification *VerificationCode
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
