package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrValidation         = errors.New("invalid input")
	ErrInvalidTransition  = errors.New("operation not allowed in current status")
	ErrAlreadyRecorded    = errors.New("expense already recorded for this request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
)
