package leaderboard

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/result"
	"github.com/riskibarqy/recliiga/internal/domain/team"
)

func completedEvent(id string, playerIDs []string, t1, t2 team.Team) event.Event {
	return event.Event{
		ID:             id,
		LeagueID:       "lg-1",
		Status:         event.StatusCompleted,
		ResultsEntered: true,
		PlayerIDs:      playerIDs,
		Team1:          t1,
		Team2:          t2,
	}
}

func TestCompute_Scenarios(t *testing.T) {
	t.Parallel()

	p := player.Player{ID: "p1", Name: "Ana"}

	tests := []struct {
		name   string
		event  event.Event
		result result.Result
		want   Row
	}{
		{
			name: "non captain win",
			event: completedEvent("e1", []string{"p1"},
				team.Team{ID: "t1", CaptainID: "c1", PlayerIDs: []string{"p1"}},
				team.Team{ID: "t2", CaptainID: "c2"}),
			result: result.Result{EventID: "e1", Team1Score: 3, Team2Score: 1, AttendingPlayerIDs: []string{"p1"}},
			want:   Row{PlayerID: "p1", PlayerName: "Ana", GamesPlayed: 1, GamesWon: 1, Attendance: 1, Points: 3},
		},
		{
			name: "captain win",
			event: completedEvent("e1", []string{"p1"},
				team.Team{ID: "t1", CaptainID: "p1"},
				team.Team{ID: "t2", CaptainID: "c2"}),
			result: result.Result{EventID: "e1", Team1Score: 3, Team2Score: 1, AttendingPlayerIDs: []string{"p1"}},
			want:   Row{PlayerID: "p1", PlayerName: "Ana", GamesPlayed: 1, GamesWon: 1, GamesWonAsCaptain: 1, Attendance: 1, Points: 3},
		},
		{
			name: "draw derives a tie",
			event: completedEvent("e1", []string{"p1"},
				team.Team{ID: "t1"},
				team.Team{ID: "t2", PlayerIDs: []string{"p1"}}),
			result: result.Result{EventID: "e1", Team1Score: 2, Team2Score: 2, AttendingPlayerIDs: []string{"p1"}},
			want:   Row{PlayerID: "p1", PlayerName: "Ana", GamesPlayed: 1, GamesTied: 1, Attendance: 1, Points: 1},
		},
		{
			name: "loss on team two",
			event: completedEvent("e1", []string{"p1"},
				team.Team{ID: "t1"},
				team.Team{ID: "t2", PlayerIDs: []string{"p1"}}),
			result: result.Result{EventID: "e1", Team1Score: 4, Team2Score: 0, AttendingPlayerIDs: []string{"p1"}},
			want:   Row{PlayerID: "p1", PlayerName: "Ana", GamesPlayed: 1, GamesLost: 1, Attendance: 1},
		},
		{
			name: "attended but on neither team is flagged",
			event: completedEvent("e1", []string{"p1"},
				team.Team{ID: "t1"},
				team.Team{ID: "t2"}),
			result: result.Result{EventID: "e1", Team1Score: 1, Team2Score: 0, AttendingPlayerIDs: []string{"p1"}},
			want:   Row{PlayerID: "p1", PlayerName: "Ana", GamesPlayed: 1, GamesTied: 1, Attendance: 1, Points: 1, UnassignedResults: 1},
		},
		{
			name: "rsvp without attendance",
			event: completedEvent("e1", []string{"p1"},
				team.Team{ID: "t1", PlayerIDs: []string{"p1"}},
				team.Team{ID: "t2"}),
			result: result.Result{EventID: "e1", Team1Score: 1, Team2Score: 0},
			want:   Row{PlayerID: "p1", PlayerName: "Ana", GamesPlayed: 1, GamesTied: 1, NonAttendance: 1, Points: 1},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rows := Compute([]player.Player{p}, []event.Event{tc.event}, []result.Result{tc.result})
			if len(rows) != 1 {
				t.Fatalf("expected one row, got %d", len(rows))
			}
			if !reflect.DeepEqual(rows[0], tc.want) {
				t.Fatalf("unexpected row:\n got: %+v\nwant: %+v", rows[0], tc.want)
			}
		})
	}
}

func TestCompute_NoCompletedEventsIsZeroRow(t *testing.T) {
	t.Parallel()

	open := event.Event{ID: "e1", PlayerIDs: []string{"p1"}}
	rows := Compute([]player.Player{{ID: "p1", Name: "Ana"}}, []event.Event{open}, nil)
	if rows[0].GamesPlayed != 0 || rows[0].Points != 0 {
		t.Fatalf("expected zero row, got %+v", rows[0])
	}
	if got := Fractions(rows[0]); got != (Record{}) {
		t.Fatalf("expected zero fractions, got %+v", got)
	}
}

func TestCompute_InvariantsHoldAndIsIdempotent(t *testing.T) {
	t.Parallel()

	players := []player.Player{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
	events := []event.Event{
		completedEvent("e1", []string{"a", "b", "c"},
			team.Team{ID: "t1", CaptainID: "a"}, team.Team{ID: "t2", CaptainID: "b"}),
		completedEvent("e2", []string{"a", "b"},
			team.Team{ID: "t3", PlayerIDs: []string{"b"}}, team.Team{ID: "t4", CaptainID: "a"}),
		{ID: "e3", PlayerIDs: []string{"a", "b", "c"}},
	}
	results := []result.Result{
		{EventID: "e1", Team1Score: 2, Team2Score: 1, AttendingPlayerIDs: []string{"a", "b", "c"}},
		{EventID: "e2", Team1Score: 0, Team2Score: 0, AttendingPlayerIDs: []string{"a", "b"}},
		{EventID: "missing", Team1Score: 5, Team2Score: 0, AttendingPlayerIDs: []string{"a"}},
	}

	first := Compute(players, events, results)
	second := Compute(players, events, results)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("compute is not idempotent")
	}

	for _, row := range first {
		if row.GamesTied < 0 {
			t.Fatalf("negative ties: %+v", row)
		}
		if row.GamesWon+row.GamesLost <= row.GamesPlayed && row.GamesTied != row.GamesPlayed-row.GamesWon-row.GamesLost {
			t.Fatalf("tie derivation broken: %+v", row)
		}
		if row.Points != 3*row.GamesWon+row.GamesTied {
			t.Fatalf("points formula broken: %+v", row)
		}
	}

	a := first[0]
	if a.GamesWon != 1 || a.GamesWonAsCaptain != 1 || a.GamesPlayed != 2 || a.Attendance != 3 || a.GamesTied != 1 {
		t.Fatalf("unexpected row for a: %+v", a)
	}
}

func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		t1, t2 int
		want   Outcome
	}{
		{3, 1, Team1Won},
		{0, 2, Team2Won},
		{2, 2, Tie},
	}
	for _, c := range cases {
		if got := OutcomeOf(c.t1, c.t2); got != c.want {
			t.Fatalf("OutcomeOf(%d,%d)=%s want %s", c.t1, c.t2, got, c.want)
		}
	}
}

func TestSortByPoints(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{PlayerName: "zed", Points: 3, GamesWon: 1},
		{PlayerName: "amy", Points: 6, GamesWon: 2},
		{PlayerName: "bob", Points: 3, GamesWon: 1},
		{PlayerName: "cat", Points: 3, GamesWon: 0},
	}
	SortByPoints(rows)

	wantNames := []string{"amy", "bob", "zed", "cat"}
	wantRanks := []int{1, 2, 2, 4}
	for i := range rows {
		if rows[i].PlayerName != wantNames[i] || rows[i].Rank != wantRanks[i] {
			t.Fatalf("row %d = %s rank %d, want %s rank %d", i, rows[i].PlayerName, rows[i].Rank, wantNames[i], wantRanks[i])
		}
	}
}

func TestFractions(t *testing.T) {
	t.Parallel()

	got := Fractions(Row{GamesPlayed: 4, GamesWon: 2, GamesLost: 1, GamesTied: 1})
	if got.Won != 0.5 || got.Lost != 0.25 || got.Tied != 0.25 {
		t.Fatalf("unexpected fractions %+v", got)
	}
}
