// Package common defines shared constants and sentinel errors used across
// the Credor client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("user already exists")

	// Local validation errors (rejected before any network call).
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidAge   = errors.New("invalid age")

	// Generic flow control.
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)
