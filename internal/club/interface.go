package club

import "time"

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	UpsertUserByEmail(email, name, role string) (*User, error)
	GetUser(id string) (*User, error)
	SearchPlayers(query, level string, limit int) ([]User, error)
	Leaderboard(level string, limit int) ([]User, error)

	CreateCourt(name, surface string, indoor bool) (*Court, error)
	ListCourts() ([]Court, error)
	GetCourt(id string) (*Court, error)

	CreateEquipment(name, category string, quantity int, notes string) (*Equipment, error)
	ListEquipment() ([]Equipment, error)
	GetEquipment(id string) (*Equipment, error)

	CreateTournament(title, level string, start, end time.Time, description string) (*Tournament, error)
	ListTournaments() ([]Tournament, error)

	CreateMatchResult(player1ID, player2ID, winnerID, score, tournamentID string, playedAt time.Time) (*MatchResult, error)
	ListMatchResults(tournamentID string) ([]MatchResult, error)

	Clear()
}
