package shared

import "errors"

// Sentinel errors shared across domain services. The HTTP boundary maps
// each of these to a status code; anything else becomes a 500.
var (
	// ErrNotFound indicates the identifier does not resolve to a record.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates a uniqueness violation (role name, user email).
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing, malformed or expired token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the authenticated role is not permitted.
	ErrForbidden = errors.New("forbidden")
	// ErrTooManyRequests indicates the caller exceeded a rate limit.
	ErrTooManyRequests = errors.New("too many requests")
)
