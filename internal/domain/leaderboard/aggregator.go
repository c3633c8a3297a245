// Package leaderboard derives per-player league standings from events and
// recorded results. Rows are never persisted.
package leaderboard

import (
	"slices"
	"strings"

	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/result"
	"github.com/riskibarqy/recliiga/internal/domain/team"
)

const (
	PointsPerWin = 3
	PointsPerTie = 1
)

type Row struct {
	PlayerID          string
	PlayerName        string
	AvatarURL         string
	GamesPlayed       int
	GamesWon          int
	GamesLost         int
	GamesTied         int
	GamesWonAsCaptain int
	Attendance        int
	NonAttendance     int
	Points            int
	// UnassignedResults counts attended results where the player was on
	// neither team. Those games inflate GamesTied.
	UnassignedResults int
	Rank              int
}

// Compute returns one row per player in input order.
//
// GamesTied is derived as GamesPlayed - GamesWon - GamesLost rather than
// counted per result, and is floored at zero.
func Compute(players []player.Player, events []event.Event, results []result.Result) []Row {
	eventsByID := make(map[string]event.Event, len(events))
	for _, e := range events {
		eventsByID[e.ID] = e
	}

	rows := make([]Row, 0, len(players))
	for _, p := range players {
		row := Row{PlayerID: p.ID, PlayerName: p.Name, AvatarURL: p.AvatarURL}

		for _, e := range events {
			if e.ResultsEntered && e.HasRSVP(p.ID) {
				row.GamesPlayed++
			}
		}

		for _, r := range results {
			if !r.Attended(p.ID) {
				continue
			}
			row.Attendance++

			e, ok := eventsByID[r.EventID]
			if !ok {
				continue
			}
			mine, score, opp, ok := sideOf(e, r, p.ID)
			if !ok {
				row.UnassignedResults++
				continue
			}
			switch {
			case score > opp:
				row.GamesWon++
				if mine.CaptainID == p.ID {
					row.GamesWonAsCaptain++
				}
			case score < opp:
				row.GamesLost++
			}
		}

		row.NonAttendance = row.GamesPlayed - row.Attendance
		row.GamesTied = max(row.GamesPlayed-row.GamesWon-row.GamesLost, 0)
		row.Points = row.GamesWon*PointsPerWin + row.GamesTied*PointsPerTie
		rows = append(rows, row)
	}

	return rows
}

// sideOf finds the team playerID played for in e and that team's score.
func sideOf(e event.Event, r result.Result, playerID string) (team.Team, int, int, bool) {
	switch {
	case e.Team1.Includes(playerID):
		return e.Team1, r.Team1Score, r.Team2Score, true
	case e.Team2.Includes(playerID):
		return e.Team2, r.Team2Score, r.Team1Score, true
	default:
		return team.Team{}, 0, 0, false
	}
}

type Outcome string

const (
	Team1Won Outcome = "team1_won"
	Team2Won Outcome = "team2_won"
	Tie      Outcome = "tie"
)

func OutcomeOf(team1Score, team2Score int) Outcome {
	switch {
	case team1Score > team2Score:
		return Team1Won
	case team2Score > team1Score:
		return Team2Won
	default:
		return Tie
	}
}

// Record holds win, loss and tie shares of GamesPlayed for the record circle.
type Record struct {
	Won  float64
	Lost float64
	Tied float64
}

func Fractions(row Row) Record {
	if row.GamesPlayed <= 0 {
		return Record{}
	}
	total := float64(row.GamesPlayed)
	return Record{
		Won:  float64(row.GamesWon) / total,
		Lost: float64(row.GamesLost) / total,
		Tied: float64(row.GamesTied) / total,
	}
}

// SortByPoints orders rows by points, then wins, then name, and assigns
// competition ranks (1, 2, 2, 4) to rows level on points and wins.
func SortByPoints(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		if a.GamesWon != b.GamesWon {
			return b.GamesWon - a.GamesWon
		}
		return strings.Compare(strings.ToLower(a.PlayerName), strings.ToLower(b.PlayerName))
	})

	for i := range rows {
		if i > 0 && rows[i].Points == rows[i-1].Points && rows[i].GamesWon == rows[i-1].GamesWon {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}
}
