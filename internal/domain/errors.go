package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure: no infrastructure dependency.

var (
	// Validation errors. Surfaced verbatim to the caller so input can be
	// corrected.
	ErrMissingDate      = errors.New("date is required")
	ErrInvalidDate      = errors.New("date must be a calendar date in YYYY-MM-DD form")
	ErrMissingTaskType  = errors.New("task type is required")
	ErrNonPositiveHours = errors.New("hours must be greater than zero")

	// ErrEntryNotFound covers both "no such id" and "owned by someone else".
	// The two are deliberately indistinguishable so the API never confirms
	// the existence of another owner's data.
	ErrEntryNotFound = errors.New("entry not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrNameTaken          = errors.New("name already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned before any store access when no valid
	// principal is attached to the request.
	ErrUnauthenticated = errors.New("unauthenticated")
)
