package auth

import (
	"database/sql"
	"sync"
	"time"
)

// Identity is the resolved caller identity attached to a request.
type Identity struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// store is the db-backed session store.
type store struct {
	db  *sql.DB
	ttl time.Duration
	mu  sync.RWMutex
}
