package draft

import (
	"slices"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/team"
)

// RosterUpdate is the roster snapshot broadcast after a pick.
type RosterUpdate struct {
	EventID   string    `json:"event_id"`
	TeamID    string    `json:"team_id"`
	CaptainID string    `json:"captain_id"`
	PlayerIDs []string  `json:"player_ids"`
	Origin    string    `json:"origin"`
	SentAt    time.Time `json:"sent_at"`
}

// ApplyRemoteRoster merges an update received from the realtime channel
// into the local copy of a team. Updates that originated from localActor
// are echoes and are dropped, as are updates for other teams. Otherwise the
// remote roster replaces the local one.
func ApplyRemoteRoster(local team.Team, update RosterUpdate, localActor string) (team.Team, bool) {
	if update.Origin != "" && update.Origin == localActor {
		return local, false
	}
	if update.TeamID == "" || update.TeamID != local.ID {
		return local, false
	}
	if update.EventID != "" && local.EventID != "" && update.EventID != local.EventID {
		return local, false
	}

	out := local
	out.PlayerIDs = slices.Clone(update.PlayerIDs)
	if update.CaptainID != "" {
		out.CaptainID = update.CaptainID
	}
	return out, true
}

// Board is a local view of both rosters of one event while a draft runs.
type Board struct {
	EventID string
	TeamA   team.Team
	TeamB   team.Team
	Mode    Mode
	PerTeam int
}

// Apply routes the update to whichever side it targets.
func (b *Board) Apply(update RosterUpdate, localActor string) bool {
	if next, ok := ApplyRemoteRoster(b.TeamA, update, localActor); ok {
		b.TeamA = next
		return true
	}
	if next, ok := ApplyRemoteRoster(b.TeamB, update, localActor); ok {
		b.TeamB = next
		return true
	}
	return false
}

func (b *Board) Next() team.Team {
	return NextPickingTeam(b.TeamA, b.TeamB, b.Mode)
}

func (b *Board) Complete() bool {
	return IsComplete(b.TeamA, b.TeamB, b.PerTeam)
}

// Drafted reports whether playerID is already on either roster or captains
// a side.
func (b *Board) Drafted(playerID string) bool {
	return b.TeamA.Includes(playerID) || b.TeamB.Includes(playerID)
}

// Snapshot builds the update a picker broadcasts for side t.
func Snapshot(t team.Team, origin string, now time.Time) RosterUpdate {
	return RosterUpdate{
		EventID:   t.EventID,
		TeamID:    t.ID,
		CaptainID: t.CaptainID,
		PlayerIDs: slices.Clone(t.PlayerIDs),
		Origin:    origin,
		SentAt:    now.UTC(),
	}
}
