package notifier

import (
	"sync"

	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/club"
)

var _ Notifier = (*MockNotifier)(nil)

// MockNotifier is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendBookingNotificationFunc func(res *booking.Reservation, resourceName, userName string, dryRun bool) error
	SendResultNotificationFunc  func(result *club.MatchResult, winnerName, loserName string, dryRun bool) error

	// Call records
	SendBookingNotificationCalls []BookingNotificationCall
	SendResultNotificationCalls  []ResultNotificationCall
}

// BookingNotificationCall holds the arguments for a call to SendBookingNotification.
type BookingNotificationCall struct {
	Reservation  *booking.Reservation
	ResourceName string
	UserName     string
	DryRun       bool
}

// ResultNotificationCall holds the arguments for a call to SendResultNotification.
type ResultNotificationCall struct {
	Result     *club.MatchResult
	WinnerName string
	LoserName  string
	DryRun     bool
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

// Reset clears all call records.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingNotificationCalls = nil
	m.SendResultNotificationCalls = nil
}

func (m *MockNotifier) SendBookingNotification(res *booking.Reservation, resourceName, userName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingNotificationCalls = append(m.SendBookingNotificationCalls, BookingNotificationCall{res, resourceName, userName, dryRun})
	if m.SendBookingNotificationFunc != nil {
		return m.SendBookingNotificationFunc(res, resourceName, userName, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendResultNotification(result *club.MatchResult, winnerName, loserName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, ResultNotificationCall{result, winnerName, loserName, dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(result, winnerName, loserName, dryRun)
	}
	return nil
}
