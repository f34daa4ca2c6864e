package domain

import "errors"

// Validation errors
var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	ErrEmailTaken   = errors.New("email already registered")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not authenticated")
)

// OTP errors
var (
	ErrOTPInvalid        = errors.New("invalid otp")
	ErrOTPExpired        = errors.New("otp has expired")
	ErrOTPAlreadyUsed    = errors.New("otp has already been used")
	ErrOTPSessionExpired = errors.New("otp verification expired")
)

// Session errors
var (
	ErrSessionInvalid = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
)

// Authorization errors
var (
	ErrNotAdmin = errors.New("unauthorized access")
)

// Catalog errors
var (
	ErrProductNotFound = errors.New("product not found")
)
