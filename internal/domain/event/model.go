package event

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/domain/team"
)

var (
	ErrRSVPClosed        = errors.New("rsvp deadline has passed")
	ErrEventFull         = errors.New("event roster is full")
	ErrInvalidTransition = errors.New("invalid event status transition")
)

type Status string

const (
	StatusOpen             Status = "open"
	StatusCaptainsSelected Status = "captains_selected"
	StatusDrafting         Status = "drafting"
	StatusDrafted          Status = "drafted"
	StatusCompleted        Status = "completed"
)

// transitions lists the statuses reachable from each status. Drafting is
// optional, so captains_selected may go straight to completed.
var transitions = map[Status][]Status{
	StatusOpen:             {StatusCaptainsSelected},
	StatusCaptainsSelected: {StatusCaptainsSelected, StatusDrafting, StatusCompleted},
	StatusDrafting:         {StatusDrafted, StatusCompleted},
	StatusDrafted:          {StatusCompleted},
	StatusCompleted:        {StatusCompleted},
}

func (s Status) CanTransition(to Status) bool {
	return slices.Contains(transitions[s], to)
}

// Event is one scheduled match between two teams of a league.
type Event struct {
	ID       string
	LeagueID string
	Title    string
	Location string
	StartsAt time.Time
	// RSVPDeadline is how long before StartsAt RSVPs close.
	RSVPDeadline   time.Duration
	RosterSpots    int
	DraftMode      draft.Mode
	Status         Status
	ResultsEntered bool
	PlayerIDs      []string
	Team1          team.Team
	Team2          team.Team
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.LeagueID == "" {
		return fmt.Errorf("event league id is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event title is required")
	}
	if e.StartsAt.IsZero() {
		return fmt.Errorf("event start time is required")
	}
	if e.RSVPDeadline < 0 {
		return fmt.Errorf("event rsvp deadline offset must not be negative")
	}
	if e.RosterSpots < 2 || e.RosterSpots%2 != 0 {
		return fmt.Errorf("event roster spots must be an even number of at least 2")
	}
	if _, err := draft.ParseMode(string(e.DraftMode)); err != nil {
		return err
	}

	return nil
}

// DeadlineAt is the instant RSVPs close.
func (e Event) DeadlineAt() time.Time {
	return e.StartsAt.Add(-e.RSVPDeadline)
}

func (e Event) RSVPOpen(now time.Time) bool {
	return now.Before(e.DeadlineAt()) && e.Status == StatusOpen
}

// Countdown is the time left until RSVPs close, never negative.
func (e Event) Countdown(now time.Time) time.Duration {
	left := e.DeadlineAt().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (e Event) HasRSVP(playerID string) bool {
	return slices.Contains(e.PlayerIDs, playerID)
}

func (e Event) Full() bool {
	return len(e.PlayerIDs) >= e.RosterSpots
}

// SlotsPerTeam is the number of picks each captain makes; the captain
// fills one spot of each half.
func (e Event) SlotsPerTeam() int {
	per := e.RosterSpots/2 - 1
	if per < 0 {
		return 0
	}
	return per
}

// DraftPool returns RSVP'd players not yet on either team.
func (e Event) DraftPool() []string {
	out := make([]string, 0, len(e.PlayerIDs))
	for _, id := range e.PlayerIDs {
		if e.Team1.Includes(id) || e.Team2.Includes(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// TeamOfCaptain returns the side captained by playerID.
func (e Event) TeamOfCaptain(playerID string) (team.Team, bool) {
	switch {
	case playerID == "":
		return team.Team{}, false
	case e.Team1.CaptainID == playerID:
		return e.Team1, true
	case e.Team2.CaptainID == playerID:
		return e.Team2, true
	default:
		return team.Team{}, false
	}
}

// IsCaptain reports whether playerID captains either side.
func (e Event) IsCaptain(playerID string) bool {
	_, ok := e.TeamOfCaptain(playerID)
	return ok
}
