// Package apperrors defines the application's sentinel errors.
package apperrors

import "errors"

// Authentication errors. ErrInvalidCredentials is deliberately generic:
// protected routes answer with it no matter why authentication failed.
var (
	ErrInvalidCredentials = errors.New("could not validate credentials")
	ErrNoAttributes       = errors.New("CAS attributes not valid")
)

// Resource errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrRollNoAlreadyExists = errors.New("roll number already exists")
)
