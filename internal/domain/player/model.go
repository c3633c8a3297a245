package player

import (
	"fmt"
	"strings"
	"time"
)

// Position is a preferred playing position shown on a player card.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is the league-facing profile of a signed-up user.
type Player struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	AvatarURL string
	Positions []Position
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("player user id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	seen := make(map[Position]struct{}, len(p.Positions))
	for _, pos := range p.Positions {
		if _, ok := AllPositions[pos]; !ok {
			return fmt.Errorf("invalid player position: %s", pos)
		}
		if _, dup := seen[pos]; dup {
			return fmt.Errorf("duplicate player position: %s", pos)
		}
		seen[pos] = struct{}{}
	}

	return nil
}
