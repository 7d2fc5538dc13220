package booking

import (
	"database/sql"
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
)

// Status is the lifecycle state of a reservation. A reservation is never
// mutated except for the transition confirmed -> cancelled.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Kind names the type of resource a reservation claims.
type Kind string

const (
	KindCourt     Kind = "court"
	KindEquipment Kind = "equipment"
)

// Reservation is a time-bounded claim on a resource by a user.
// The interval is half-open: [Start, End).
type Reservation struct {
	ID           string    `json:"id"`
	ResourceID   string    `json:"resource_id"`
	ResourceKind Kind      `json:"resource_kind"`
	UserID       string    `json:"user_id"`
	Start        time.Time `json:"start_time"`
	End          time.Time `json:"end_time"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Overlaps reports whether the reservation's interval shares any instant
// with [start, end). Touching endpoints do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.Start.Before(end) && start.Before(r.End)
}

// ResourceLookup is the slice of the club store the engine needs to verify
// that a booked resource exists and is active.
type ResourceLookup interface {
	GetCourt(id string) (*club.Court, error)
	GetEquipment(id string) (*club.Equipment, error)
}

// engine coordinates overlap validation and reservation commits.
type engine struct {
	db        *sql.DB
	resources ResourceLookup
	metrics   metrics.Metrics
	pubsub    pubsub.PubSubClient

	// One mutex per resource id. Holding it across the check-then-insert
	// sequence is what keeps two racing requests from both committing;
	// bookings on different resources proceed fully in parallel.
	locks sync.Map
}
