package booking

import (
	"context"
	"sync"
	"time"
)

var _ Engine = (*MockEngine)(nil)

// MockEngine is a mock implementation of the Engine interface for testing.
// It is safe for concurrent use.
type MockEngine struct {
	mu sync.Mutex

	// Spies for method calls
	CreateReservationFunc func(ctx context.Context, kind Kind, resourceID, userID string, start, end time.Time) (*Reservation, error)
	CancelReservationFunc func(ctx context.Context, id, userID string) error
	ListForUserFunc       func(ctx context.Context, userID string) ([]Reservation, error)
	ListForResourceFunc   func(ctx context.Context, resourceID string, status Status) ([]Reservation, error)

	// Call records
	CreateReservationCalls []CreateReservationCall
	CancelReservationCalls []struct{ ID, UserID string }
	ListForUserCalls       []string
	ListForResourceCalls   []struct {
		ResourceID string
		Status     Status
	}
}

// CreateReservationCall holds the arguments for a call to CreateReservation.
type CreateReservationCall struct {
	Kind       Kind
	ResourceID string
	UserID     string
	Start      time.Time
	End        time.Time
}

// NewMock creates a new mock instance.
func NewMock() *MockEngine {
	return &MockEngine{}
}

func (m *MockEngine) CreateReservation(ctx context.Context, kind Kind, resourceID, userID string, start, end time.Time) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateReservationCalls = append(m.CreateReservationCalls, CreateReservationCall{kind, resourceID, userID, start, end})
	if m.CreateReservationFunc != nil {
		return m.CreateReservationFunc(ctx, kind, resourceID, userID, start, end)
	}
	return &Reservation{
		ID:           "mock-reservation",
		ResourceID:   resourceID,
		ResourceKind: kind,
		UserID:       userID,
		Start:        start,
		End:          end,
		Status:       StatusConfirmed,
	}, nil
}

func (m *MockEngine) CancelReservation(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelReservationCalls = append(m.CancelReservationCalls, struct{ ID, UserID string }{id, userID})
	if m.CancelReservationFunc != nil {
		return m.CancelReservationFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockEngine) ListForUser(ctx context.Context, userID string) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListForUserCalls = append(m.ListForUserCalls, userID)
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockEngine) ListForResource(ctx context.Context, resourceID string, status Status) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListForResourceCalls = append(m.ListForResourceCalls, struct {
		ResourceID string
		Status     Status
	}{resourceID, status})
	if m.ListForResourceFunc != nil {
		return m.ListForResourceFunc(ctx, resourceID, status)
	}
	return nil, nil
}
