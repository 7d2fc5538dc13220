package club

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// User is a club member. Role is either "player" or "admin".
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Rating    int       `json:"rating"`
	Level     string    `json:"level"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Court is a bookable playing surface.
type Court struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Surface   string    `json:"surface"`
	Indoor    bool      `json:"indoor"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Equipment is a bookable gear item (rackets, ball machines, ...).
type Equipment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Tournament is a club event players can enter.
type Tournament struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Level       string    `json:"level,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MatchResult records the outcome of a played match.
type MatchResult struct {
	ID           string    `json:"id"`
	Player1ID    string    `json:"player1_id"`
	Player2ID    string    `json:"player2_id"`
	WinnerID     string    `json:"winner_id"`
	Score        string    `json:"score"`
	TournamentID string    `json:"tournament_id,omitempty"`
	PlayedAt     time.Time `json:"played_at"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

var validSurfaces = map[string]bool{"hard": true, "clay": true, "grass": true, "carpet": true}
var validCategories = map[string]bool{"racket": true, "balls": true, "machine": true, "other": true}
var validRoles = map[string]bool{RolePlayer: true, RoleAdmin: true}
var validLevels = map[string]bool{"beginner": true, "intermediate": true, "advanced": true, "pro": true}
