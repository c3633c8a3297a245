package usecase

import (
	"context"
	"fmt"
)

// RealtimeMessage is a payload fanned out to subscribers of Channel.
type RealtimeMessage struct {
	Channel string
	Event   string
	Payload any
}

// RealtimePublisher delivers messages to the external pub/sub service.
type RealtimePublisher interface {
	Publish(ctx context.Context, msg RealtimeMessage) error
}

// Email is a plain transactional email.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type EmailSender interface {
	Send(ctx context.Context, email Email) error
}

const (
	EventDraftPick     = "draft.pick"
	EventResultEntered = "result.entered"
	EventChatMessage   = "chat.message"
)

func DraftChannel(eventID string) string {
	return fmt.Sprintf("event-%s-draft", eventID)
}

func ChatChannel(leagueID string) string {
	return fmt.Sprintf("league-%s-chat", leagueID)
}

func ResultsChannel(leagueID string) string {
	return fmt.Sprintf("league-%s-results", leagueID)
}
