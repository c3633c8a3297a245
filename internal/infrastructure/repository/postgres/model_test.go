package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/team"
	qb "github.com/riskibarqy/recliiga/internal/platform/querybuilder"
)

func TestEventModelRoundTrip(t *testing.T) {
	startsAt := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	in := event.Event{
		ID:           "evt-1",
		LeagueID:     "lg-1",
		Title:        "Sunday",
		StartsAt:     startsAt,
		RSVPDeadline: 90 * time.Minute,
		RosterSpots:  10,
		DraftMode:    draft.ModeSnake,
		Status:       event.StatusOpen,
		CreatedBy:    "usr-1",
	}

	insert := eventToInsert(in)
	if insert.RSVPDeadlineSeconds != 5400 {
		t.Fatalf("unexpected deadline seconds: %d", insert.RSVPDeadlineSeconds)
	}
	if insert.Location != nil {
		t.Fatalf("expected nil location for empty string")
	}

	out := eventFromRow(eventTableModel{
		PublicID:            insert.PublicID,
		LeagueID:            insert.LeagueID,
		Title:               insert.Title,
		StartsAt:            insert.StartsAt,
		RSVPDeadlineSeconds: insert.RSVPDeadlineSeconds,
		RosterSpots:         insert.RosterSpots,
		DraftMode:           insert.DraftMode,
		Status:              insert.Status,
	})
	if out.RSVPDeadline != in.RSVPDeadline || out.DraftMode != draft.ModeSnake {
		t.Fatalf("unexpected event: %+v", out)
	}
	if !out.DeadlineAt().Equal(startsAt.Add(-90 * time.Minute)) {
		t.Fatalf("unexpected deadline: %s", out.DeadlineAt())
	}
	if out.PlayerIDs == nil {
		t.Fatalf("expected empty, non-nil rsvp list")
	}
}

func TestTeamInsertColumns(t *testing.T) {
	cols, vals, err := qb.ModelColumns(teamToInsert(team.Team{ID: "tm-1", EventID: "evt-1", Name: "Blue"}, teamSlotOne))
	if err != nil {
		t.Fatalf("model columns: %v", err)
	}
	want := []string{"public_id", "event_public_id", "slot", "name", "color", "captain_player_id"}
	if len(cols) != len(want) {
		t.Fatalf("unexpected columns: %v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("column %d = %s want %s", i, cols[i], want[i])
		}
	}
	if captain, ok := vals[5].(*string); !ok || captain != nil {
		t.Fatalf("expected nil captain pointer, got %#v", vals[5])
	}
}

func TestPlayerToInsertPositions(t *testing.T) {
	insert := playerToInsert(player.Player{
		ID:        "pl-1",
		UserID:    "usr-1",
		Name:      "Ana",
		Positions: []player.Position{player.PositionMidfielder, player.PositionForward},
	})
	if len(insert.Positions) != 2 || insert.Positions[1] != "FWD" {
		t.Fatalf("unexpected positions: %v", insert.Positions)
	}

	back := playerFromRow(playerTableModel{PublicID: "pl-1", UserID: "usr-1", Name: "Ana", Positions: insert.Positions})
	if back.Positions[0] != player.PositionMidfielder || back.Email != "" {
		t.Fatalf("unexpected player: %+v", back)
	}
}
