package booking

import (
	"context"
	"time"
)

// Engine is the reservation engine. It owns the no-double-booking
// invariant: for any resource, no two confirmed reservations overlap.
type Engine interface {
	CreateReservation(ctx context.Context, kind Kind, resourceID, userID string, start, end time.Time) (*Reservation, error)
	CancelReservation(ctx context.Context, id, userID string) error
	ListForUser(ctx context.Context, userID string) ([]Reservation, error)
	ListForResource(ctx context.Context, resourceID string, status Status) ([]Reservation, error)
}
