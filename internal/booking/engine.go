package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
)

// New creates a reservation engine over the given database.
func New(db *sql.DB, resources ResourceLookup, metricsSvc metrics.Metrics, pubsubClient pubsub.PubSubClient) Engine {
	return &engine{
		db:        db,
		resources: resources,
		metrics:   metricsSvc,
		pubsub:    pubsubClient,
	}
}

// lockFor returns the mutex guarding bookings for a single resource,
// creating it on first use.
func (e *engine) lockFor(resourceID string) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(resourceID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// CreateReservation validates the request, checks it against all confirmed
// reservations on the resource, and commits it. The check and the insert
// run under the resource's mutex, so concurrent requests for the same
// resource serialize and exactly one of a conflicting pair wins.
func (e *engine) CreateReservation(ctx context.Context, kind Kind, resourceID, userID string, start, end time.Time) (*Reservation, error) {
	e.metrics.IncBookingAttempts()

	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Reason: "is required"}
	}
	if resourceID == "" {
		return nil, &ValidationError{Field: "resource_id", Reason: "is required"}
	}
	if !start.Before(end) {
		return nil, &ValidationError{Field: "start_time", Reason: "must be before end_time"}
	}
	if err := e.checkResource(kind, resourceID); err != nil {
		return nil, err
	}

	mu := e.lockFor(resourceID)
	mu.Lock()
	defer mu.Unlock()

	checkStart := time.Now()
	conflict, err := e.findConflict(ctx, resourceID, start, end)
	e.metrics.ObserveConflictCheckDuration(time.Since(checkStart).Seconds())
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		e.metrics.IncBookingConflicts()
		log.Info("Rejected conflicting reservation",
			"resourceID", resourceID, "userID", userID, "conflictingID", conflict.ConflictingID)
		return nil, conflict
	}

	res := &Reservation{
		ID:           uuid.New().String(),
		ResourceID:   resourceID,
		ResourceKind: kind,
		UserID:       userID,
		Start:        start,
		End:          end,
		Status:       StatusConfirmed,
		CreatedAt:    time.Now(),
	}
	_, err = e.db.ExecContext(ctx, `
		INSERT INTO reservations (id, resource_id, resource_kind, user_id, start_time, end_time, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, res.ID, res.ResourceID, string(res.ResourceKind), res.UserID, res.Start.Unix(), res.End.Unix(), string(res.Status), res.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to persist reservation: %w", err)
	}

	log.Info("Created reservation",
		"reservationID", res.ID, "resourceID", resourceID, "userID", userID,
		"start", start.Format(time.RFC3339), "end", end.Format(time.RFC3339))

	// Notification fan-out is best effort; the booking stands either way.
	if err := e.pubsub.SendMessage(pubsub.EventNotifyBooking, res); err != nil {
		log.Error("Failed to publish booking event", "error", err, "reservationID", res.ID)
	}
	return res, nil
}

// checkResource enforces that the booked resource exists and is active.
func (e *engine) checkResource(kind Kind, resourceID string) error {
	switch kind {
	case KindCourt:
		court, err := e.resources.GetCourt(resourceID)
		if err != nil {
			if errors.Is(err, club.ErrNotFound) {
				return &ValidationError{Field: "resource_id", Reason: "unknown court"}
			}
			return err
		}
		if !court.IsActive {
			return &ValidationError{Field: "resource_id", Reason: "court is not active"}
		}
	case KindEquipment:
		eq, err := e.resources.GetEquipment(resourceID)
		if err != nil {
			if errors.Is(err, club.ErrNotFound) {
				return &ValidationError{Field: "resource_id", Reason: "unknown equipment"}
			}
			return err
		}
		if !eq.IsActive {
			return &ValidationError{Field: "resource_id", Reason: "equipment is not active"}
		}
	default:
		return &ValidationError{Field: "resource_kind", Reason: fmt.Sprintf("unknown kind %q", kind)}
	}
	return nil
}

// findConflict returns the first confirmed reservation overlapping
// [start, end), or nil. Intervals are half-open, so a reservation ending
// exactly at start does not block. Cancelled reservations never block.
func (e *engine) findConflict(ctx context.Context, resourceID string, start, end time.Time) (*ConflictError, error) {
	var id string
	var existingStart, existingEnd int64
	err := e.db.QueryRowContext(ctx, `
		SELECT id, start_time, end_time
		FROM reservations
		WHERE resource_id = ? AND status = ? AND start_time < ? AND end_time > ?
		ORDER BY start_time
		LIMIT 1
	`, resourceID, string(StatusConfirmed), end.Unix(), start.Unix()).Scan(&id, &existingStart, &existingEnd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check for conflicts: %w", err)
	}
	return &ConflictError{
		ResourceID:    resourceID,
		ConflictingID: id,
		Start:         time.Unix(existingStart, 0),
		End:           time.Unix(existingEnd, 0),
	}, nil
}

// CancelReservation transitions a confirmed reservation to cancelled,
// freeing its interval for rebooking. Only the requester may cancel.
func (e *engine) CancelReservation(ctx context.Context, id, userID string) error {
	var ownerID string
	var status string
	err := e.db.QueryRowContext(ctx,
		"SELECT user_id, status FROM reservations WHERE id = ?", id,
	).Scan(&ownerID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to query reservation: %w", err)
	}
	if ownerID != userID {
		return ErrNotOwner
	}
	if Status(status) != StatusConfirmed {
		return ErrNotCancellable
	}

	_, err = e.db.ExecContext(ctx,
		"UPDATE reservations SET status = ? WHERE id = ?", string(StatusCancelled), id)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}
	e.metrics.IncBookingCancellations()
	log.Info("Cancelled reservation", "reservationID", id, "userID", userID)
	return nil
}

// ListForUser returns all of a user's reservations, any status, ordered by
// start time ascending.
func (e *engine) ListForUser(ctx context.Context, userID string) ([]Reservation, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT id, resource_id, resource_kind, user_id, start_time, end_time, status, created_at
		FROM reservations
		WHERE user_id = ?
		ORDER BY start_time
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListForResource returns a resource's reservations ordered by start time,
// optionally filtered to a single status.
func (e *engine) ListForResource(ctx context.Context, resourceID string, status Status) ([]Reservation, error) {
	q := `
		SELECT id, resource_id, resource_kind, user_id, start_time, end_time, status, created_at
		FROM reservations
		WHERE resource_id = ?
	`
	args := []any{resourceID}
	if status != "" {
		q += " AND status = ?"
		args = append(args, string(status))
	}
	q += " ORDER BY start_time"

	rows, err := e.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func scanReservations(rows *sql.Rows) ([]Reservation, error) {
	var reservations []Reservation
	for rows.Next() {
		var r Reservation
		var kind, status string
		var start, end, createdAt int64
		if err := rows.Scan(&r.ID, &r.ResourceID, &kind, &r.UserID, &start, &end, &status, &createdAt); err != nil {
			log.Error("Failed to scan reservation row", "error", err)
			continue
		}
		r.ResourceKind = Kind(kind)
		r.Status = Status(status)
		r.Start = time.Unix(start, 0)
		r.End = time.Unix(end, 0)
		r.CreatedAt = time.Unix(createdAt, 0)
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}
