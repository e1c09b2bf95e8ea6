// Package common defines shared constants and sentinel errors used across
// Projboard components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors.
	ErrorValidation        = errors.New("validation error")
	ErrorUsernameTaken     = errors.New("username already taken")
	ErrorInvalidCredential = errors.New("invalid username or password")

	// Upload-specific errors.
	ErrorRejectedFileType = errors.New("file type not allowed")
	ErrorEmptyFileName    = errors.New("empty file name")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
)
