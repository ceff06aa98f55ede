package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks client-caused input errors; handlers map any
	// error wrapping it to 400.
	ErrValidation = errors.New("invalid request")

	ErrEventNotFound      = errors.New("event not found")
	ErrVersionNotFound    = errors.New("version not found")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrForbidden          = errors.New("not enough permissions")
	ErrOwnerProtected     = errors.New("the owner's permission cannot be changed or removed")
	ErrInvalidTimeRange   = errors.New("end_time must be after start_time")
)

// ConflictError reports how many existing events overlap the requested
// interval(s) when the caller has not set the force flag.
type ConflictError struct {
	Count int
	Batch bool
}

func (e *ConflictError) Error() string {
	if e.Batch {
		return fmt.Sprintf("found conflicts for %d events in batch", e.Count)
	}
	return fmt.Sprintf("event conflicts with %d existing events", e.Count)
}
