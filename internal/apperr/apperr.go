// Package apperr defines the error taxonomy shared by services and handlers.
// Services wrap these sentinels with context; handlers map them to HTTP
// status codes in one place.
package apperr

import "errors"

var (
	// ErrValidation marks malformed input detected before any mutation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation (duplicate review, slug, email).
	ErrConflict = errors.New("conflict")

	// ErrPermissionDenied marks an action rejected by the permission table.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthenticated marks a request that requires an identity but has none.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrDeliveryFailure marks a failed dispatch over the email channel.
	ErrDeliveryFailure = errors.New("delivery failure")
)
