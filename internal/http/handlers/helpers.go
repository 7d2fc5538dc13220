package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/auth"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/club"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey   ContextKey = "dryRun"
	IdentityKey ContextKey = "identity"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// IdentityFromContext retrieves the resolved caller identity, if any.
func IdentityFromContext(r *http.Request) (*auth.Identity, bool) {
	identity, ok := r.Context().Value(IdentityKey).(*auth.Identity)
	return identity, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps domain errors to HTTP responses. conflictMsg is the
// message used for overlapping-interval rejections, which differs between
// court and gear endpoints.
func writeError(w http.ResponseWriter, err error, conflictMsg string) {
	var conflict *booking.ConflictError
	var validation *booking.ValidationError

	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		http.Error(w, "Invalid token", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrNotAuthorized):
		http.Error(w, "Admins only", http.StatusForbidden)
	case errors.As(err, &conflict):
		http.Error(w, conflictMsg, http.StatusBadRequest)
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusBadRequest)
	case errors.Is(err, club.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, booking.ErrNotCancellable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, booking.ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, club.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error("Unhandled error in handler", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// requireAdmin returns the caller identity, writing a 401/403 if the caller
// is missing or not an admin.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity, ok := IdentityFromContext(r)
	if !ok {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return nil, false
	}
	if identity.Role != club.RoleAdmin {
		http.Error(w, "Admins only", http.StatusForbidden)
		return nil, false
	}
	return identity, true
}
