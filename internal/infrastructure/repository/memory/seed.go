package memory

import (
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/team"
)

const (
	LeagueIDSundayFive = "lg-sunday-five"
	EventIDSeedKickoff = "evt-sunday-kickoff"
)

var seedEpoch = time.Date(2026, 1, 4, 9, 0, 0, 0, time.UTC)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-ana", UserID: "usr-ana", Name: "Ana Costa", Email: "ana@example.com", Positions: []player.Position{player.PositionMidfielder}, CreatedAt: seedEpoch, UpdatedAt: seedEpoch},
		{ID: "pl-ben", UserID: "usr-ben", Name: "Ben Okafor", Email: "ben@example.com", Positions: []player.Position{player.PositionDefender}, CreatedAt: seedEpoch, UpdatedAt: seedEpoch},
		{ID: "pl-cai", UserID: "usr-cai", Name: "Cai Lindqvist", Email: "cai@example.com", Positions: []player.Position{player.PositionForward}, CreatedAt: seedEpoch, UpdatedAt: seedEpoch},
		{ID: "pl-dee", UserID: "usr-dee", Name: "Dee Marsh", Email: "dee@example.com", Positions: []player.Position{player.PositionGoalkeeper}, CreatedAt: seedEpoch, UpdatedAt: seedEpoch},
	}
}

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:          LeagueIDSundayFive,
			Name:        "Sunday Five-a-Side",
			Description: "Casual five-a-side every Sunday morning.",
			OwnerUserID: "usr-ana",
			InviteCode:  "SUNDAY55",
			CreatedAt:   seedEpoch,
		},
	}
}

func SeedMemberships() []league.Membership {
	out := make([]league.Membership, 0, 4)
	for i, p := range SeedPlayers() {
		role := league.RoleMember
		if i == 0 {
			role = league.RoleOwner
		}
		out = append(out, league.Membership{
			LeagueID:    LeagueIDSundayFive,
			PlayerID:    p.ID,
			Status:      league.MembershipAccepted,
			Role:        role,
			RequestedAt: seedEpoch,
			JoinedAt:    seedEpoch,
		})
	}
	return out
}

func SeedEvents() []event.Event {
	startsAt := seedEpoch.AddDate(1, 0, 0)
	return []event.Event{
		{
			ID:           EventIDSeedKickoff,
			LeagueID:     LeagueIDSundayFive,
			Title:        "Sunday Kickoff",
			Location:     "Riverside Park Pitch 2",
			StartsAt:     startsAt,
			RSVPDeadline: 24 * time.Hour,
			RosterSpots:  4,
			DraftMode:    draft.ModeAlternating,
			Status:       event.StatusOpen,
			PlayerIDs:    []string{"pl-ana", "pl-ben"},
			Team1:        team.Team{ID: "tm-kickoff-1", EventID: EventIDSeedKickoff, Name: "Team 1", Color: "#1E88E5"},
			Team2:        team.Team{ID: "tm-kickoff-2", EventID: EventIDSeedKickoff, Name: "Team 2", Color: "#E53935"},
			CreatedBy:    "usr-ana",
			CreatedAt:    seedEpoch,
			UpdatedAt:    seedEpoch,
		},
	}
}
