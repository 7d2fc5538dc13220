package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/club"
)

type createCourtRequest struct {
	Name    string `json:"name"`
	Surface string `json:"surface"`
	Indoor  bool   `json:"indoor"`
}

// CreateCourtHandler creates a court. Admin only.
func CreateCourtHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		var req createCourtRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		court, err := store.CreateCourt(req.Name, req.Surface, req.Indoor)
		if err != nil {
			writeError(w, err, "")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": court.ID})
	}
}

func ListCourtsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courts, err := store.ListCourts()
		if err != nil {
			http.Error(w, "Failed to get courts", http.StatusInternalServerError)
			log.Error("Failed to get courts from store", "error", err)
			return
		}
		if courts == nil {
			courts = []club.Court{}
		}
		writeJSON(w, http.StatusOK, courts)
	}
}

type createEquipmentRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// CreateEquipmentHandler creates a gear item. Admin only.
func CreateEquipmentHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		var req createEquipmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		eq, err := store.CreateEquipment(req.Name, req.Category, req.Quantity, req.Notes)
		if err != nil {
			writeError(w, err, "")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": eq.ID})
	}
}

func ListEquipmentHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.ListEquipment()
		if err != nil {
			http.Error(w, "Failed to get equipment", http.StatusInternalServerError)
			log.Error("Failed to get equipment from store", "error", err)
			return
		}
		if items == nil {
			items = []club.Equipment{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}
