package auth

import (
	"sync"

	"github.com/mauv0809/courtside/internal/club"
)

// MockSessions is a mock implementation of Sessions for testing.
// It is safe for concurrent use.
type MockSessions struct {
	mu sync.Mutex

	// Spies for method calls
	IssueFunc   func(user *club.User) (string, error)
	ResolveFunc func(token string) (*Identity, error)
	RevokeFunc  func(token string) error

	// Call records
	IssueCalls   []*club.User
	ResolveCalls []string
	RevokeCalls  []string
}

// NewMock creates a new mock instance.
func NewMock() *MockSessions {
	return &MockSessions{}
}

func (m *MockSessions) Issue(user *club.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IssueCalls = append(m.IssueCalls, user)
	if m.IssueFunc != nil {
		return m.IssueFunc(user)
	}
	return "mock-token", nil
}

func (m *MockSessions) Resolve(token string) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveCalls = append(m.ResolveCalls, token)
	if m.ResolveFunc != nil {
		return m.ResolveFunc(token)
	}
	return &Identity{UserID: "mock-user", Role: club.RolePlayer}, nil
}

func (m *MockSessions) Revoke(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RevokeCalls = append(m.RevokeCalls, token)
	if m.RevokeFunc != nil {
		return m.RevokeFunc(token)
	}
	return nil
}
