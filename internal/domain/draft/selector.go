package draft

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/recliiga/internal/domain/team"
)

var (
	ErrInvalidMode       = errors.New("invalid draft mode")
	ErrNotYourTurn       = errors.New("not this captain's turn to pick")
	ErrDraftComplete     = errors.New("draft is already complete")
	ErrPlayerUnavailable = errors.New("player is not available to draft")
	ErrNotCaptain        = errors.New("actor is not a captain of this event")
)

// Mode selects how pick order is derived from roster sizes.
type Mode string

const (
	ModeAlternating Mode = "alternating"
	ModeSnake       Mode = "snake"
)

func ParseMode(v string) (Mode, error) {
	switch Mode(v) {
	case ModeAlternating, ModeSnake:
		return Mode(v), nil
	case "":
		return ModeAlternating, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidMode, v)
	}
}

// NextPickingTeam returns the team that picks next.
//
// Alternating: the team with fewer drafted players, team A on ties.
// Snake: rounds are pairs of picks; even rounds start with A and odd rounds
// start with B, giving A,B,B,A,A,B,...
//
// It does not check capacity. Callers stop once IsComplete reports true.
func NextPickingTeam(a, b team.Team, mode Mode) team.Team {
	lenA, lenB := a.Size(), b.Size()

	if mode != ModeSnake {
		if lenA <= lenB {
			return a
		}
		return b
	}

	round := (lenA + lenB) / 2
	if round%2 == 0 {
		if lenA <= lenB {
			return a
		}
		return b
	}
	if lenB <= lenA {
		return b
	}
	return a
}

// IsComplete reports whether both teams have filled perTeam draft slots.
func IsComplete(a, b team.Team, perTeam int) bool {
	return a.Size() >= perTeam && b.Size() >= perTeam
}
