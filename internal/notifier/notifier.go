package notifier

import (
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/club"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For new court/equipment reservations
	SendBookingNotification(res *booking.Reservation, resourceName, userName string, dryRun bool) error
	// For submitted match results
	SendResultNotification(result *club.MatchResult, winnerName, loserName string, dryRun bool) error
}
