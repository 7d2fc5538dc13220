package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/pubsub"
)

type createTournamentRequest struct {
	Title       string    `json:"title"`
	Level       string    `json:"level"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description"`
}

// CreateTournamentHandler creates a tournament. Admin only.
func CreateTournamentHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		var req createTournamentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		tournament, err := store.CreateTournament(req.Title, req.Level, req.StartDate, req.EndDate, req.Description)
		if err != nil {
			writeError(w, err, "")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": tournament.ID})
	}
}

func ListTournamentsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := store.ListTournaments()
		if err != nil {
			http.Error(w, "Failed to get tournaments", http.StatusInternalServerError)
			log.Error("Failed to get tournaments from store", "error", err)
			return
		}
		if tournaments == nil {
			tournaments = []club.Tournament{}
		}
		writeJSON(w, http.StatusOK, tournaments)
	}
}

type submitResultRequest struct {
	Player1ID    string    `json:"player1_id"`
	Player2ID    string    `json:"player2_id"`
	WinnerID     string    `json:"winner_id"`
	Score        string    `json:"score"`
	TournamentID string    `json:"tournament_id"`
	PlayedAt     time.Time `json:"played_at"`
}

// SubmitResultHandler records a match result and fans out a notification
// event.
func SubmitResultHandler(store club.ClubStore, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r); !ok {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		var req submitResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		result, err := store.CreateMatchResult(req.Player1ID, req.Player2ID, req.WinnerID, req.Score, req.TournamentID, req.PlayedAt)
		if err != nil {
			writeError(w, err, "")
			return
		}

		if err := pubsubClient.SendMessage(pubsub.EventNotifyResult, result); err != nil {
			log.Error("Failed to publish result event", "error", err, "resultID", result.ID)
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": result.ID})
	}
}

func ListResultsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := store.ListMatchResults(r.URL.Query().Get("tournament_id"))
		if err != nil {
			http.Error(w, "Failed to get results", http.StatusInternalServerError)
			log.Error("Failed to get match results from store", "error", err)
			return
		}
		if results == nil {
			results = []club.MatchResult{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

// LeaderboardHandler returns players ordered by rating.
func LeaderboardHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r.URL.Query().Get("limit"))
		players, err := store.Leaderboard(r.URL.Query().Get("level"), limit)
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}
		if players == nil {
			players = []club.User{}
		}
		writeJSON(w, http.StatusOK, players)
	}
}

// PlayerDirectoryHandler searches the player directory.
func PlayerDirectoryHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r.URL.Query().Get("limit"))
		players, err := store.SearchPlayers(r.URL.Query().Get("q"), r.URL.Query().Get("level"), limit)
		if err != nil {
			http.Error(w, "Failed to search players", http.StatusInternalServerError)
			log.Error("Failed to search players", "error", err)
			return
		}
		if players == nil {
			players = []club.User{}
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
