package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is unknown to the token store
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmptyPassword indicates an attempt to hash an empty password
	ErrEmptyPassword = errors.New("password cannot be empty")
)
