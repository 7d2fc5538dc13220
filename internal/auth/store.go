package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/club"
)

// ErrNotAuthenticated is returned for missing, unknown, or expired tokens.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNotAuthorized is returned when an identity lacks the required role.
var ErrNotAuthorized = errors.New("not authorized")

// NewStore creates a session store with the given token lifetime.
func NewStore(db *sql.DB, ttl time.Duration) Sessions {
	return &store{
		db:  db,
		ttl: ttl,
	}
}

// Issue creates a session for the user and returns the opaque token.
func (s *store) Issue(user *club.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.New().String()
	now := time.Now()
	_, err := s.db.Exec(`
		INSERT INTO sessions (token, user_id, role, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, token, user.ID, user.Role, now.Add(s.ttl).Unix(), now.Unix())
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	log.Info("Issued session", "userID", user.ID, "role", user.Role)
	return token, nil
}

// Resolve maps a token to an identity. Expired sessions are removed lazily.
func (s *store) Resolve(token string) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if token == "" {
		return nil, ErrNotAuthenticated
	}

	var id Identity
	var expiresAt int64
	err := s.db.QueryRow(`
		SELECT s.user_id, s.role, u.email, u.name, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ?
	`, token).Scan(&id.UserID, &id.Role, &id.Email, &id.Name, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if time.Now().Unix() >= expiresAt {
		if _, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
			log.Error("Failed to delete expired session", "error", err)
		}
		return nil, ErrNotAuthenticated
	}
	return &id, nil
}

// Revoke deletes a session. Revoking an unknown token is not an error.
func (s *store) Revoke(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// Login upserts the user by email and issues a fresh session token.
func Login(users club.ClubStore, sessions Sessions, email, name, role string) (*club.User, string, error) {
	user, err := users.UpsertUserByEmail(email, name, role)
	if err != nil {
		return nil, "", err
	}
	token, err := sessions.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
