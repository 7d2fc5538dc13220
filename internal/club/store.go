package club

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ErrInvalidInput marks schema validation failures at the store's write path.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound is returned when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// UpsertUserByEmail creates a user on first login and updates name/role on
// subsequent logins. The stored rating and level are never touched here.
func (s *store) UpsertUserByEmail(email, name, role string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if role == "" {
		role = RolePlayer
	}
	if !validRoles[role] {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	user := &User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Role:      role,
		Rating:    1200,
		Level:     "beginner",
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, name, role, rating, level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			role = excluded.role;
	`, user.ID, user.Email, user.Name, user.Role, user.Rating, user.Level, user.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	// Re-read so the caller gets the persisted row, not the candidate one.
	row := s.db.QueryRow(`
		SELECT id, email, name, role, rating, level, COALESCE(bio, ''), COALESCE(avatar_url, ''), created_at
		FROM users WHERE email = ?
	`, email)
	stored, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read back user: %w", err)
	}
	log.Info("Upserted user", "userID", stored.ID, "email", email, "role", stored.Role)
	return stored, nil
}

func (s *store) GetUser(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, email, name, role, rating, level, COALESCE(bio, ''), COALESCE(avatar_url, ''), created_at
		FROM users WHERE id = ?
	`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// SearchPlayers performs a case-insensitive fuzzy search over the player
// directory (e.g. "anna" matches "Hannah Berg").
func (s *store) SearchPlayers(query, level string, limit int) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	q := `
		SELECT id, email, name, role, rating, level, COALESCE(bio, ''), COALESCE(avatar_url, ''), created_at
		FROM users WHERE role = 'player'
	`
	args := []any{}
	if level != "" {
		q += " AND level = ?"
		args = append(args, level)
	}
	if query != "" {
		q += " AND name LIKE ? COLLATE NOCASE"
		args = append(args, "%"+query+"%")
	}
	q += " ORDER BY name LIMIT ?"
	args = append(args, limit)

	return s.queryUsers(q, args...)
}

// Leaderboard returns players ordered by rating, highest first.
func (s *store) Leaderboard(level string, limit int) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	q := `
		SELECT id, email, name, role, rating, level, COALESCE(bio, ''), COALESCE(avatar_url, ''), created_at
		FROM users WHERE role = 'player'
	`
	args := []any{}
	if level != "" {
		q += " AND level = ?"
		args = append(args, level)
	}
	q += " ORDER BY rating DESC, name LIMIT ?"
	args = append(args, limit)

	return s.queryUsers(q, args...)
}

func (s *store) queryUsers(query string, args ...any) ([]User, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query users", "error", err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("Failed to scan user row", "error", err)
			continue
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(scanner interface{ Scan(...any) error }) (*User, error) {
	var u User
	var createdAt int64
	err := scanner.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Rating, &u.Level, &u.Bio, &u.AvatarURL, &createdAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	return &u, nil
}

func (s *store) CreateCourt(name, surface string, indoor bool) (*Court, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("%w: court name is required", ErrInvalidInput)
	}
	if surface == "" {
		surface = "hard"
	}
	if !validSurfaces[surface] {
		return nil, fmt.Errorf("%w: unknown surface %q", ErrInvalidInput, surface)
	}

	court := &Court{
		ID:        uuid.New().String(),
		Name:      name,
		Surface:   surface,
		Indoor:    indoor,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(`
		INSERT INTO courts (id, name, surface, indoor, is_active, created_at)
		VALUES (?, ?, ?, ?, 1, ?)
	`, court.ID, court.Name, court.Surface, court.Indoor, court.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create court: %w", err)
	}
	log.Info("Created court", "courtID", court.ID, "name", name, "surface", surface)
	return court, nil
}

func (s *store) ListCourts() ([]Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, surface, indoor, is_active, created_at
		FROM courts ORDER BY name
	`)
	if err != nil {
		log.Error("Failed to query courts", "error", err)
		return nil, err
	}
	defer rows.Close()

	var courts []Court
	for rows.Next() {
		var c Court
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Surface, &c.Indoor, &c.IsActive, &createdAt); err != nil {
			log.Error("Failed to scan court row", "error", err)
			continue
		}
		c.CreatedAt = time.Unix(createdAt, 0)
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

func (s *store) GetCourt(id string) (*Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Court
	var createdAt int64
	err := s.db.QueryRow(`
		SELECT id, name, surface, indoor, is_active, created_at
		FROM courts WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Surface, &c.Indoor, &c.IsActive, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("court %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query court: %w", err)
	}
	c.CreatedAt = time.Unix(createdAt, 0)
	return &c, nil
}

func (s *store) CreateEquipment(name, category string, quantity int, notes string) (*Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("%w: equipment name is required", ErrInvalidInput)
	}
	if category == "" {
		category = "other"
	}
	if !validCategories[category] {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if quantity == 0 {
		quantity = 1
	}

	eq := &Equipment{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Quantity:  quantity,
		Notes:     notes,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(`
		INSERT INTO equipment (id, name, category, quantity, notes, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)
	`, eq.ID, eq.Name, eq.Category, eq.Quantity, eq.Notes, eq.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	log.Info("Created equipment", "equipmentID", eq.ID, "name", name, "category", category)
	return eq, nil
}

func (s *store) ListEquipment() ([]Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, category, quantity, COALESCE(notes, ''), is_active, created_at
		FROM equipment ORDER BY name
	`)
	if err != nil {
		log.Error("Failed to query equipment", "error", err)
		return nil, err
	}
	defer rows.Close()

	var items []Equipment
	for rows.Next() {
		var e Equipment
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Quantity, &e.Notes, &e.IsActive, &createdAt); err != nil {
			log.Error("Failed to scan equipment row", "error", err)
			continue
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		items = append(items, e)
	}
	return items, rows.Err()
}

func (s *store) GetEquipment(id string) (*Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e Equipment
	var createdAt int64
	err := s.db.QueryRow(`
		SELECT id, name, category, quantity, COALESCE(notes, ''), is_active, created_at
		FROM equipment WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &e.Category, &e.Quantity, &e.Notes, &e.IsActive, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("equipment %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	e.CreatedAt = time.Unix(createdAt, 0)
	return &e, nil
}

func (s *store) CreateTournament(title, level string, start, end time.Time, description string) (*Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		return nil, fmt.Errorf("%w: tournament title is required", ErrInvalidInput)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", ErrInvalidInput)
	}

	tournament := &Tournament{
		ID:          uuid.New().String(),
		Title:       title,
		Level:       level,
		StartDate:   start,
		EndDate:     end,
		Description: description,
		CreatedAt:   time.Now(),
	}
	_, err := s.db.Exec(`
		INSERT INTO tournaments (id, title, level, start_date, end_date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, tournament.ID, tournament.Title, tournament.Level, start.Unix(), end.Unix(), description, tournament.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	log.Info("Created tournament", "tournamentID", tournament.ID, "title", title)
	return tournament, nil
}

func (s *store) ListTournaments() ([]Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, COALESCE(level, ''), start_date, end_date, COALESCE(description, ''), created_at
		FROM tournaments ORDER BY start_date
	`)
	if err != nil {
		log.Error("Failed to query tournaments", "error", err)
		return nil, err
	}
	defer rows.Close()

	var tournaments []Tournament
	for rows.Next() {
		var t Tournament
		var start, end, createdAt int64
		if err := rows.Scan(&t.ID, &t.Title, &t.Level, &start, &end, &t.Description, &createdAt); err != nil {
			log.Error("Failed to scan tournament row", "error", err)
			continue
		}
		t.StartDate = time.Unix(start, 0)
		t.EndDate = time.Unix(end, 0)
		t.CreatedAt = time.Unix(createdAt, 0)
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (s *store) CreateMatchResult(player1ID, player2ID, winnerID, score, tournamentID string, playedAt time.Time) (*MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player1ID == "" || player2ID == "" {
		return nil, fmt.Errorf("%w: both player ids are required", ErrInvalidInput)
	}
	if winnerID != player1ID && winnerID != player2ID {
		return nil, fmt.Errorf("%w: winner_id must be one of the players", ErrInvalidInput)
	}
	if score == "" {
		return nil, fmt.Errorf("%w: score is required", ErrInvalidInput)
	}

	result := &MatchResult{
		ID:           uuid.New().String(),
		Player1ID:    player1ID,
		Player2ID:    player2ID,
		WinnerID:     winnerID,
		Score:        score,
		TournamentID: tournamentID,
		PlayedAt:     playedAt,
		CreatedAt:    time.Now(),
	}
	_, err := s.db.Exec(`
		INSERT INTO match_results (id, player1_id, player2_id, winner_id, score, tournament_id, played_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ID, player1ID, player2ID, winnerID, score, nullable(tournamentID), playedAt.Unix(), result.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create match result: %w", err)
	}
	log.Info("Recorded match result", "resultID", result.ID, "winnerID", winnerID)
	return result, nil
}

func (s *store) ListMatchResults(tournamentID string) ([]MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := `
		SELECT id, player1_id, player2_id, winner_id, score, COALESCE(tournament_id, ''), played_at, created_at
		FROM match_results
	`
	args := []any{}
	if tournamentID != "" {
		q += " WHERE tournament_id = ?"
		args = append(args, tournamentID)
	}
	q += " ORDER BY played_at DESC"

	rows, err := s.db.Query(q, args...)
	if err != nil {
		log.Error("Failed to query match results", "error", err)
		return nil, err
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var r MatchResult
		var playedAt, createdAt int64
		if err := rows.Scan(&r.ID, &r.Player1ID, &r.Player2ID, &r.WinnerID, &r.Score, &r.TournamentID, &playedAt, &createdAt); err != nil {
			log.Error("Failed to scan match result row", "error", err)
			continue
		}
		r.PlayedAt = time.Unix(playedAt, 0)
		r.CreatedAt = time.Unix(createdAt, 0)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Clear wipes all club data. Used by the admin /clear endpoint and tests.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"match_results", "tournaments", "reservations", "sessions", "equipment", "courts", "users"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
