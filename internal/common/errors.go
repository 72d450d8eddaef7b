// Package common defines shared constants and sentinel errors used across
// the memoria server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrDuplicateIdentity is returned when a user with the same email exists.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Auth errors. ErrInvalidCredentials covers both an unknown email and a
	// wrong password so the two cases cannot be told apart by the caller.
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmptyPassword      = errors.New("empty password")

	// Request errors.
	ErrValidation    = errors.New("validation error")
	ErrInvalidAction = errors.New("invalid action")
	ErrRateLimited   = errors.New("too many attempts")
)
