package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/auth"
	"github.com/mauv0809/courtside/internal/club"
)

type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
}

// LoginHandler upserts the user by email and issues a session token.
func LoginHandler(store club.ClubStore, sessions auth.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		user, token, err := auth.Login(store, sessions, req.Email, req.Name, req.Role)
		if err != nil {
			writeError(w, err, "")
			return
		}

		log.Info("User logged in", "userID", user.ID, "role", user.Role)
		writeJSON(w, http.StatusOK, loginResponse{Token: token, Role: user.Role, UserID: user.ID})
	}
}

// MeHandler echoes the resolved caller identity.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r)
		if !ok {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, identity)
	}
}
