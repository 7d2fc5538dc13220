package club

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertUserByEmailFunc func(email, name, role string) (*User, error)
	GetUserFunc           func(id string) (*User, error)
	SearchPlayersFunc     func(query, level string, limit int) ([]User, error)
	LeaderboardFunc       func(level string, limit int) ([]User, error)
	CreateCourtFunc       func(name, surface string, indoor bool) (*Court, error)
	ListCourtsFunc        func() ([]Court, error)
	GetCourtFunc          func(id string) (*Court, error)
	CreateEquipmentFunc   func(name, category string, quantity int, notes string) (*Equipment, error)
	ListEquipmentFunc     func() ([]Equipment, error)
	GetEquipmentFunc      func(id string) (*Equipment, error)
	CreateTournamentFunc  func(title, level string, start, end time.Time, description string) (*Tournament, error)
	ListTournamentsFunc   func() ([]Tournament, error)
	CreateMatchResultFunc func(player1ID, player2ID, winnerID, score, tournamentID string, playedAt time.Time) (*MatchResult, error)
	ListMatchResultsFunc  func(tournamentID string) ([]MatchResult, error)
	ClearFunc             func()

	// Call records
	UpsertUserByEmailCalls []struct{ Email, Name, Role string }
	GetCourtCalls          []string
	GetEquipmentCalls      []string
	CreateCourtCalls       []struct {
		Name    string
		Surface string
		Indoor  bool
	}
	ClearCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertUserByEmail(email, name, role string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertUserByEmailCalls = append(m.UpsertUserByEmailCalls, struct{ Email, Name, Role string }{email, name, role})
	if m.UpsertUserByEmailFunc != nil {
		return m.UpsertUserByEmailFunc(email, name, role)
	}
	return &User{ID: "mock-user", Email: email, Name: name, Role: role}, nil
}

func (m *MockStore) GetUser(id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetUserFunc != nil {
		return m.GetUserFunc(id)
	}
	return &User{ID: id, Role: RolePlayer}, nil
}

func (m *MockStore) SearchPlayers(query, level string, limit int) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SearchPlayersFunc != nil {
		return m.SearchPlayersFunc(query, level, limit)
	}
	return nil, nil
}

func (m *MockStore) Leaderboard(level string, limit int) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(level, limit)
	}
	return nil, nil
}

func (m *MockStore) CreateCourt(name, surface string, indoor bool) (*Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCourtCalls = append(m.CreateCourtCalls, struct {
		Name    string
		Surface string
		Indoor  bool
	}{name, surface, indoor})
	if m.CreateCourtFunc != nil {
		return m.CreateCourtFunc(name, surface, indoor)
	}
	return &Court{ID: "mock-court", Name: name, Surface: surface, Indoor: indoor, IsActive: true}, nil
}

func (m *MockStore) ListCourts() ([]Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListCourtsFunc != nil {
		return m.ListCourtsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetCourt(id string) (*Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCourtCalls = append(m.GetCourtCalls, id)
	if m.GetCourtFunc != nil {
		return m.GetCourtFunc(id)
	}
	return &Court{ID: id, Name: "Mock Court", IsActive: true}, nil
}

func (m *MockStore) CreateEquipment(name, category string, quantity int, notes string) (*Equipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateEquipmentFunc != nil {
		return m.CreateEquipmentFunc(name, category, quantity, notes)
	}
	return &Equipment{ID: "mock-equipment", Name: name, Category: category, Quantity: quantity, IsActive: true}, nil
}

func (m *MockStore) ListEquipment() ([]Equipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListEquipmentFunc != nil {
		return m.ListEquipmentFunc()
	}
	return nil, nil
}

func (m *MockStore) GetEquipment(id string) (*Equipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetEquipmentCalls = append(m.GetEquipmentCalls, id)
	if m.GetEquipmentFunc != nil {
		return m.GetEquipmentFunc(id)
	}
	return &Equipment{ID: id, Name: "Mock Gear", IsActive: true}, nil
}

func (m *MockStore) CreateTournament(title, level string, start, end time.Time, description string) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateTournamentFunc != nil {
		return m.CreateTournamentFunc(title, level, start, end, description)
	}
	return &Tournament{ID: "mock-tournament", Title: title, Level: level, StartDate: start, EndDate: end}, nil
}

func (m *MockStore) ListTournaments() ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc()
	}
	return nil, nil
}

func (m *MockStore) CreateMatchResult(player1ID, player2ID, winnerID, score, tournamentID string, playedAt time.Time) (*MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateMatchResultFunc != nil {
		return m.CreateMatchResultFunc(player1ID, player2ID, winnerID, score, tournamentID, playedAt)
	}
	return &MatchResult{ID: "mock-result", Player1ID: player1ID, Player2ID: player2ID, WinnerID: winnerID, Score: score}, nil
}

func (m *MockStore) ListMatchResults(tournamentID string) ([]MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListMatchResultsFunc != nil {
		return m.ListMatchResultsFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
