package domain

import "errors"

// Domain-facing error taxonomy. Storage failures are re-typed into these
// exactly once, at the service boundary.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrValidation        = errors.New("validation error")
	ErrMissingParameters = errors.New("missing parameters")
	ErrConflictingUser   = errors.New("conflicting user")
	ErrInternal          = errors.New("internal error")
)

// Operator account errors.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
