// Package common defines shared constants and sentinel errors used across
// the Witter client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Auth errors.
	ErrAuth         = errors.New("invalid credentials")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")

	// Resource errors.
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// Validation errors (field-level details are carried by api.ValidationError).
	ErrValidation = errors.New("validation error")

	// Transport errors (connection refused, timeout, 5xx).
	ErrUnavailable = errors.New("server unavailable")

	// Session errors.
	ErrNoSession = errors.New("no active session")
)
