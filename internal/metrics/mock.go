package metrics

import "sync"

var _ Metrics = (*MockMetrics)(nil)

// MockMetrics is a mock implementation of the Metrics interface for testing.
// It records call counts instead of registering Prometheus collectors.
type MockMetrics struct {
	mu sync.Mutex

	BookingAttemptsCalls       int
	BookingConflictsCalls      int
	BookingCancellationsCalls  int
	ConflictCheckObservations  []float64
	SlackNotifSentCalls        int
	SlackNotifFailedCalls      int
	StartupTimes               []float64
}

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncBookingAttempts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BookingAttemptsCalls++
}

func (m *MockMetrics) IncBookingConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BookingConflictsCalls++
}

func (m *MockMetrics) IncBookingCancellations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BookingCancellationsCalls++
}

func (m *MockMetrics) ObserveConflictCheckDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConflictCheckObservations = append(m.ConflictCheckObservations, duration)
}

func (m *MockMetrics) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifSentCalls++
}

func (m *MockMetrics) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifFailedCalls++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, duration)
}
