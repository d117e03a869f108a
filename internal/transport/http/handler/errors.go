package handler

const (
	errInternalServer     = "Internal server error"
	errUserNotFound       = "User not found"
	errInventoryNotFound  = "Inventory item not found"
	errInvalidCredentials = "Invalid email or password"
	errUnauthorized       = "Unauthorized"
	errEmailTaken         = "Email is already registered"
	errPasswordMismatch   = "Passwords are missing or do not match"
	errImageRequired      = "Image is required"
	errCodeInvalid        = "Verification code is invalid"
	errCodeExpired        = "Verification code has expired"
	errOTPRateLimited     = "A verification code was sent recently, try again later"
)
