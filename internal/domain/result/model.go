package result

import (
	"fmt"
	"slices"
	"time"
)

// Result is the recorded outcome of one event. There is at most one per
// event; later entries edit it.
type Result struct {
	ID                 string
	EventID            string
	Team1Score         int
	Team2Score         int
	AttendingPlayerIDs []string
	EnteredBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r Result) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("result id is required")
	}
	if r.EventID == "" {
		return fmt.Errorf("result event id is required")
	}
	if r.Team1Score < 0 || r.Team2Score < 0 {
		return fmt.Errorf("result scores must not be negative")
	}

	return nil
}

func (r Result) Attended(playerID string) bool {
	return slices.Contains(r.AttendingPlayerIDs, playerID)
}
