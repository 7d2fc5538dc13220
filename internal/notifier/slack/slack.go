package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendBookingNotification announces a new reservation in the club channel.
func (s *Notifier) SendBookingNotification(res *booking.Reservation, resourceName, userName string, dryRun bool) error {
	msg := s.formatBookingNotification(res, resourceName, userName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendResultNotification announces a submitted match result.
func (s *Notifier) SendResultNotification(result *club.MatchResult, winnerName, loserName string, dryRun bool) error {
	msg := s.formatResultNotification(result, winnerName, loserName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) formatBookingNotification(res *booking.Reservation, resourceName, userName string) slack.Message {
	icon := ":tennis:"
	if res.ResourceKind == booking.KindEquipment {
		icon = ":handbag:"
	}
	headerText := slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("%s New booking", icon), true, false)
	header := slack.NewHeaderBlock(headerText)

	body := slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf(
		"*%s* booked *%s*\n%s – %s",
		userName,
		resourceName,
		res.Start.Format("Mon Jan 2 15:04"),
		res.End.Format("15:04"),
	), false, false)
	section := slack.NewSectionBlock(body, nil, nil)

	msg := slack.NewBlockMessage(header, section)
	msg.Msg.Type = "message"
	return msg
}

func (s *Notifier) formatResultNotification(result *club.MatchResult, winnerName, loserName string) slack.Message {
	headerText := slack.NewTextBlockObject(slack.PlainTextType, ":trophy: Match result", true, false)
	header := slack.NewHeaderBlock(headerText)

	body := slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf(
		"*%s* def. *%s*\nScore: `%s`",
		winnerName,
		loserName,
		result.Score,
	), false, false)
	section := slack.NewSectionBlock(body, nil, nil)

	msg := slack.NewBlockMessage(header, section)
	msg.Msg.Type = "message"
	return msg
}
