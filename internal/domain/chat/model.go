package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxBodyLength = 2000

// Message is a league chat line.
type Message struct {
	ID         string
	LeagueID   string
	SenderID   string
	SenderName string
	Body       string
	SentAt     time.Time
}

func (m Message) Validate() error {
	if m.ID == "" || m.LeagueID == "" || m.SenderID == "" {
		return fmt.Errorf("message id, league and sender are required")
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("message body is required")
	}
	if utf8.RuneCountInString(m.Body) > MaxBodyLength {
		return fmt.Errorf("message body exceeds %d characters", MaxBodyLength)
	}

	return nil
}
