package booking_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	engine  booking.Engine
	store   club.ClubStore
	db      *sql.DB
	metrics *metrics.MockMetrics
	pubsub  *pubsub.MockPubSubClient
	court   *club.Court
}

// setupEngine creates an engine over an in-memory database with one court.
func setupEngine(t *testing.T) (*engineFixture, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	// An in-memory SQLite database exists per connection; pin the pool to
	// one so every goroutine sees the migrated schema.
	db.SetMaxOpenConns(1)

	store := club.New(db)
	court, err := store.CreateCourt("Court 1", "hard", false)
	require.NoError(t, err)

	// Reservations reference users by foreign key, so every id the tests
	// book with needs a users row.
	for _, id := range []string{"user-1", "user-2", "user-3", "someone-else"} {
		_, err := db.Exec(
			"INSERT INTO users (id, email, name, created_at) VALUES (?, ?, ?, ?)",
			id, id+"@club.test", id, time.Now().Unix(),
		)
		require.NoError(t, err)
	}

	f := &engineFixture{
		store:   store,
		db:      db,
		metrics: metrics.NewMock(),
		pubsub:  pubsub.NewMock("TEST"),
		court:   court,
	}
	f.engine = booking.New(db, store, f.metrics, f.pubsub)
	return f, teardown
}

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
}

func TestCreateReservation(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()

	res, err := f.engine.CreateReservation(context.Background(), booking.KindCourt, f.court.ID, "user-1", at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, booking.StatusConfirmed, res.Status)
	assert.Equal(t, f.court.ID, res.ResourceID)
	assert.Equal(t, "user-1", res.UserID)

	require.Len(t, f.pubsub.SendMessageCalls, 1, "a booking event should be published")
	assert.Equal(t, string(pubsub.EventNotifyBooking), f.pubsub.SendMessageCalls[0].Topic)
	assert.Equal(t, 1, f.metrics.BookingAttemptsCalls)
	assert.Equal(t, 0, f.metrics.BookingConflictsCalls)

	// The row actually hit the database, user reference included.
	persisted, err := f.engine.ListForUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, res.ID, persisted[0].ID)
}

func TestCreateReservation_Validation(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()
	ctx := context.Background()

	var vErr *booking.ValidationError

	_, err := f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "", at(10, 0), at(11, 0))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "user_id", vErr.Field)

	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(11, 0), at(10, 0))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "start_time", vErr.Field)

	// An empty interval reserves nothing.
	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(10, 0), at(10, 0))
	require.ErrorAs(t, err, &vErr)

	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, "no-such-court", "user-1", at(10, 0), at(11, 0))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "resource_id", vErr.Field)

	_, err = f.engine.CreateReservation(ctx, booking.Kind("boat"), f.court.ID, "user-1", at(10, 0), at(11, 0))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "resource_kind", vErr.Field)

	// Nothing was written and no events were published.
	reservations, err := f.engine.ListForResource(ctx, f.court.ID, "")
	require.NoError(t, err)
	assert.Empty(t, reservations)
	assert.Empty(t, f.pubsub.SendMessageCalls)
}

func TestCreateReservation_InactiveCourt(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()

	_, err := f.db.Exec("UPDATE courts SET is_active = 0 WHERE id = ?", f.court.ID)
	require.NoError(t, err)

	var vErr *booking.ValidationError
	_, err = f.engine.CreateReservation(context.Background(), booking.KindCourt, f.court.ID, "user-1", at(10, 0), at(11, 0))
	require.ErrorAs(t, err, &vErr)
}

func TestCreateReservation_Conflict(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()
	ctx := context.Background()

	first, err := f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(10, 0), at(11, 0))
	require.NoError(t, err)

	var conflict *booking.ConflictError
	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-2", at(10, 30), at(10, 45))
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.ConflictingID)
	assert.Equal(t, f.court.ID, conflict.ResourceID)
	assert.Equal(t, at(10, 0).Unix(), conflict.Start.Unix())

	// Rejection is idempotent: retrying the same interval conflicts again.
	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-2", at(10, 30), at(10, 45))
	require.ErrorAs(t, err, &conflict)

	assert.Equal(t, 2, f.metrics.BookingConflictsCalls)

	// Only the original reservation was committed.
	reservations, err := f.engine.ListForResource(ctx, f.court.ID, booking.StatusConfirmed)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
}

func TestCreateReservation_TouchingEndpointsDoNotConflict(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()
	ctx := context.Background()

	_, err := f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(10, 0), at(11, 0))
	require.NoError(t, err)

	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-2", at(11, 0), at(12, 0))
	require.NoError(t, err, "an interval starting exactly where another ends must not conflict")

	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-3", at(9, 0), at(10, 0))
	require.NoError(t, err)
}

func TestCreateReservation_CancelledDoesNotBlock(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()
	ctx := context.Background()

	res, err := f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(10, 0), at(11, 0))
	require.NoError(t, err)
	require.NoError(t, f.engine.CancelReservation(ctx, res.ID, "user-1"))

	// The cancelled interval is free for rebooking.
	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-2", at(10, 0), at(11, 0))
	require.NoError(t, err)
}

func TestCreateReservation_DifferentResourcesBookInParallel(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()
	ctx := context.Background()

	other, err := f.store.CreateCourt("Court 2", "clay", false)
	require.NoError(t, err)

	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(10, 0), at(11, 0))
	require.NoError(t, err)
	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, other.ID, "user-2", at(10, 0), at(11, 0))
	require.NoError(t, err, "the same interval on another court must not conflict")
}

func TestCreateReservation_Equipment(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()
	ctx := context.Background()

	machine, err := f.store.CreateEquipment("Ball machine", "machine", 1, "")
	require.NoError(t, err)

	_, err = f.engine.CreateReservation(ctx, booking.KindEquipment, machine.ID, "user-1", at(10, 0), at(11, 0))
	require.NoError(t, err)

	var conflict *booking.ConflictError
	_, err = f.engine.CreateReservation(ctx, booking.KindEquipment, machine.ID, "user-2", at(10, 0), at(10, 30))
	require.ErrorAs(t, err, &conflict)

	var vErr *booking.ValidationError
	_, err = f.engine.CreateReservation(ctx, booking.KindEquipment, "no-such-gear", "user-1", at(10, 0), at(11, 0))
	require.ErrorAs(t, err, &vErr)
}

func TestCancelReservation(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()
	ctx := context.Background()

	res, err := f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(10, 0), at(11, 0))
	require.NoError(t, err)

	err = f.engine.CancelReservation(ctx, res.ID, "user-2")
	assert.ErrorIs(t, err, booking.ErrNotOwner)

	require.NoError(t, f.engine.CancelReservation(ctx, res.ID, "user-1"))

	err = f.engine.CancelReservation(ctx, res.ID, "user-1")
	assert.ErrorIs(t, err, booking.ErrNotCancellable)

	err = f.engine.CancelReservation(ctx, "missing", "user-1")
	assert.ErrorIs(t, err, booking.ErrNotFound)

	assert.Equal(t, 1, f.metrics.BookingCancellationsCalls)
}

func TestListForUser_OrderedByStart(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()
	ctx := context.Background()

	r2, err := f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(14, 0), at(15, 0))
	require.NoError(t, err)
	r1, err := f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(9, 0), at(10, 0))
	require.NoError(t, err)
	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "someone-else", at(12, 0), at(13, 0))
	require.NoError(t, err)

	reservations, err := f.engine.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, r1.ID, reservations[0].ID, "earliest start first")
	assert.Equal(t, r2.ID, reservations[1].ID)
}

func TestListForResource_StatusFilter(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()
	ctx := context.Background()

	res, err := f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-1", at(9, 0), at(10, 0))
	require.NoError(t, err)
	require.NoError(t, f.engine.CancelReservation(ctx, res.ID, "user-1"))
	_, err = f.engine.CreateReservation(ctx, booking.KindCourt, f.court.ID, "user-2", at(10, 0), at(11, 0))
	require.NoError(t, err)

	all, err := f.engine.ListForResource(ctx, f.court.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	confirmed, err := f.engine.ListForResource(ctx, f.court.ID, booking.StatusConfirmed)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "user-2", confirmed[0].UserID)
}

// The check-then-insert sequence must be atomic per resource: of N
// concurrent requests with pairwise-overlapping intervals, exactly one
// commits.
func TestCreateReservation_ConcurrentWriters(t *testing.T) {
	f, teardown := setupEngine(t)
	defer teardown()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Intervals all overlap [10:00, 11:00) pairwise.
			_, err := f.engine.CreateReservation(context.Background(), booking.KindCourt, f.court.ID, "user-1", at(10, i), at(11, 0))
			errs[i] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	conflicts := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			conflicts++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent reservation must win")
	assert.Equal(t, n-1, conflicts)

	// The invariant holds: no two confirmed reservations overlap.
	confirmed, err := f.engine.ListForResource(context.Background(), f.court.ID, booking.StatusConfirmed)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	for i := range confirmed {
		for j := i + 1; j < len(confirmed); j++ {
			assert.False(t, confirmed[i].Overlaps(confirmed[j].Start, confirmed[j].End))
		}
	}
}
