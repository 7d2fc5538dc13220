package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
)

func decodePushMessage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return nil, false
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	var pubsubMsg pubsub.PushMessage
	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return nil, false
	}

	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return nil, false
	}
	return rawData, true
}

// NotifyBookingHandler receives pushed booking events and relays them to the
// club channel.
func NotifyBookingHandler(store club.ClubStore, n notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := decodePushMessage(w, r)
		if !ok {
			return
		}
		isDryRun := IsDryRunFromContext(r)

		res := booking.Reservation{}
		if err := pubsubClient.ProcessMessage(rawData, &res); err != nil {
			log.Error("Failed to decode booking payload", "error", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		resourceName := res.ResourceID
		switch res.ResourceKind {
		case booking.KindCourt:
			if court, err := store.GetCourt(res.ResourceID); err == nil {
				resourceName = court.Name
			}
		case booking.KindEquipment:
			if gear, err := store.GetEquipment(res.ResourceID); err == nil {
				resourceName = gear.Name
			}
		}
		userName := res.UserID
		if user, err := store.GetUser(res.UserID); err == nil {
			userName = user.Name
		}

		if err := n.SendBookingNotification(&res, resourceName, userName, isDryRun); err != nil {
			log.Error("Failed to notify booking", "error", err)
			http.Error(w, "Failed to notify booking", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// NotifyResultHandler receives pushed match result events and relays them to
// the club channel.
func NotifyResultHandler(store club.ClubStore, n notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := decodePushMessage(w, r)
		if !ok {
			return
		}
		isDryRun := IsDryRunFromContext(r)

		result := club.MatchResult{}
		if err := pubsubClient.ProcessMessage(rawData, &result); err != nil {
			log.Error("Failed to decode result payload", "error", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		loserID := result.Player1ID
		if result.WinnerID == result.Player1ID {
			loserID = result.Player2ID
		}
		winnerName := result.WinnerID
		if winner, err := store.GetUser(result.WinnerID); err == nil {
			winnerName = winner.Name
		}
		loserName := loserID
		if loser, err := store.GetUser(loserID); err == nil {
			loserName = loser.Name
		}

		if err := n.SendResultNotification(&result, winnerName, loserName, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
