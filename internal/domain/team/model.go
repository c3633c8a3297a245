package team

import (
	"fmt"
	"slices"
)

// Team is one of the two sides of an event. The captain is tracked apart
// from the drafted roster and does not count as a pick.
type Team struct {
	ID        string
	EventID   string
	Name      string
	Color     string
	CaptainID string
	PlayerIDs []string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.EventID == "" {
		return fmt.Errorf("team event id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Size is the number of drafted players.
func (t Team) Size() int {
	return len(t.PlayerIDs)
}

func (t Team) HasPlayer(playerID string) bool {
	return slices.Contains(t.PlayerIDs, playerID)
}

// Includes reports whether the player plays for this team, either drafted
// or as captain.
func (t Team) Includes(playerID string) bool {
	if playerID == "" {
		return false
	}
	return t.CaptainID == playerID || t.HasPlayer(playerID)
}

// WithPlayer returns a copy with playerID appended to the roster.
func (t Team) WithPlayer(playerID string) Team {
	out := t
	out.PlayerIDs = append(slices.Clone(t.PlayerIDs), playerID)
	return out
}
