package service

import "errors"

// Domain errors. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrNotFound           = errors.New("note not found")

	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrInvalidCSRF      = errors.New("csrf token missing or invalid")
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
)
