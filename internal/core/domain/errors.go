package domain

import "errors"

// Sentinel errors surfaced by the services. The API layer maps each one to a
// deterministic HTTP status in error_handler.go; user-facing copy lives there
// too, so services never format messages.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrWeakPassword       = errors.New("password too weak")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrWrongOldPassword   = errors.New("old password incorrect")
	ErrValidation         = errors.New("validation failed")
	ErrBugNotFound        = errors.New("bug not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCategory    = errors.New("invalid search category")
	ErrInvalidDateFormat  = errors.New("invalid date format")
)
