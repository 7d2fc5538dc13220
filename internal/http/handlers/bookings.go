package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/booking"
)

const (
	courtConflictMsg = "Court already booked for that time"
	gearConflictMsg  = "Equipment already reserved for that time"
)

type createBookingRequest struct {
	ResourceID string    `json:"resource_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// CreateBookingHandler books a court for the authenticated caller.
func CreateBookingHandler(engine booking.Engine) http.HandlerFunc {
	return createReservationHandler(engine, booking.KindCourt, courtConflictMsg)
}

// CreateGearReservationHandler books an equipment item; same engine, same
// overlap rule.
func CreateGearReservationHandler(engine booking.Engine) http.HandlerFunc {
	return createReservationHandler(engine, booking.KindEquipment, gearConflictMsg)
}

func createReservationHandler(engine booking.Engine, kind booking.Kind, conflictMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r)
		if !ok {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		var req createBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		res, err := engine.CreateReservation(r.Context(), kind, req.ResourceID, identity.UserID, req.StartTime, req.EndTime)
		if err != nil {
			writeError(w, err, conflictMsg)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": res.ID})
	}
}

// CancelBookingHandler cancels the caller's own reservation.
func CancelBookingHandler(engine booking.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r)
		if !ok {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		id := r.PathValue("id")
		if err := engine.CancelReservation(r.Context(), id, identity.UserID); err != nil {
			writeError(w, err, "")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(booking.StatusCancelled)})
	}
}

// MyBookingsHandler lists the caller's reservations ordered by start time.
func MyBookingsHandler(engine booking.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r)
		if !ok {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		reservations, err := engine.ListForUser(r.Context(), identity.UserID)
		if err != nil {
			http.Error(w, "Failed to get bookings", http.StatusInternalServerError)
			log.Error("Failed to get bookings", "error", err, "userID", identity.UserID)
			return
		}
		if reservations == nil {
			reservations = []booking.Reservation{}
		}
		writeJSON(w, http.StatusOK, reservations)
	}
}

// CourtBookingsHandler lists a court's reservations for utilization views.
// The optional ?status= query narrows to one status.
func CourtBookingsHandler(engine booking.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceID := r.PathValue("id")
		status := booking.Status(r.URL.Query().Get("status"))

		reservations, err := engine.ListForResource(r.Context(), resourceID, status)
		if err != nil {
			http.Error(w, "Failed to get bookings", http.StatusInternalServerError)
			log.Error("Failed to get bookings", "error", err, "resourceID", resourceID)
			return
		}
		if reservations == nil {
			reservations = []booking.Reservation{}
		}
		writeJSON(w, http.StatusOK, reservations)
	}
}
