package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a reservation id does not exist.
	ErrNotFound = errors.New("reservation not found")
	// ErrNotOwner is returned when a caller tries to cancel someone
	// else's reservation.
	ErrNotOwner = errors.New("reservation belongs to another user")
	// ErrNotCancellable is returned when the reservation is already
	// cancelled.
	ErrNotCancellable = errors.New("reservation is not cancellable")
)

// ConflictError reports an overlapping confirmed reservation. It carries the
// blocking reservation's id and interval for the caller's diagnostics.
type ConflictError struct {
	ResourceID    string
	ConflictingID string
	Start         time.Time
	End           time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("resource %s is already booked from %s to %s (reservation %s)",
		e.ResourceID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), e.ConflictingID)
}

// ValidationError reports a malformed booking request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
