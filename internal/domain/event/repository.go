package event

import (
	"context"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/team"
)

// Repository persists events together with their two teams and RSVPs.
type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Event, error)
	// ListDeadlineBetween returns open events whose RSVP deadline falls in [from, to).
	ListDeadlineBetween(ctx context.Context, from, to time.Time) ([]Event, error)

	SetRSVP(ctx context.Context, eventID, playerID string, attending bool) error
	SaveTeams(ctx context.Context, eventID string, team1, team2 team.Team) error
	// AddPick appends playerID to teamID. A player can be picked once per event.
	AddPick(ctx context.Context, eventID, teamID, playerID string) error
	UpdateStatus(ctx context.Context, eventID string, status Status, resultsEntered bool) error
}
