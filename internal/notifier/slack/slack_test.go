package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSlackAPI captures posted messages instead of hitting the Slack API.
type fakeSlackAPI struct {
	calls []struct {
		channelID string
		options   []slack.MsgOption
	}
	err error
}

func (f *fakeSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.calls = append(f.calls, struct {
		channelID string
		options   []slack.MsgOption
	}{channelID, options})
	if f.err != nil {
		return "", "", f.err
	}
	return channelID, "12345.678", nil
}

func testReservation() *booking.Reservation {
	return &booking.Reservation{
		ID:           "res-1",
		ResourceID:   "court-1",
		ResourceKind: booking.KindCourt,
		UserID:       "user-1",
		Start:        time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		End:          time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
		Status:       booking.StatusConfirmed,
	}
}

func TestSendBookingNotification(t *testing.T) {
	api := &fakeSlackAPI{}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendBookingNotification(testReservation(), "Center Court", "Serena", false)
	require.NoError(t, err)
	require.Len(t, api.calls, 1)
	assert.Equal(t, "C123", api.calls[0].channelID)
	assert.Equal(t, 1, m.SlackNotifSentCalls)
}

func TestSendBookingNotification_DryRun(t *testing.T) {
	api := &fakeSlackAPI{}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := n.SendBookingNotification(testReservation(), "Center Court", "Serena", true)
	require.NoError(t, err)
	assert.Empty(t, api.calls, "dry run must not hit the API")
}

func TestSendBookingNotification_Error(t *testing.T) {
	api := &fakeSlackAPI{err: errors.New("channel_not_found")}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendBookingNotification(testReservation(), "Center Court", "Serena", false)
	require.Error(t, err)
	assert.Equal(t, 1, m.SlackNotifFailedCalls)
}

func TestSendResultNotification(t *testing.T) {
	api := &fakeSlackAPI{}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	result := &club.MatchResult{ID: "r-1", Player1ID: "p1", Player2ID: "p2", WinnerID: "p1", Score: "6-4 3-6 7-5"}
	err := n.SendResultNotification(result, "Ana", "Maria", false)
	require.NoError(t, err)
	require.Len(t, api.calls, 1)
	assert.Equal(t, 1, m.SlackNotifSentCalls)
}
