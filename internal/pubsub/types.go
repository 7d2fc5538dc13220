package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventNotifyBooking EventType = "notify-booking"
	EventNotifyResult  EventType = "notify-result"
)

// PushMessage is the envelope Google Pub/Sub wraps around pushed messages.
type PushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}
