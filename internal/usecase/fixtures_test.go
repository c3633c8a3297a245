package usecase_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/team"
	"github.com/riskibarqy/recliiga/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
)

const (
	eventIDDraft = "evt-draft"
	team1ID      = "tm-draft-1"
	team2ID      = "tm-draft-2"
)

// world is the seeded Sunday Five league plus one non-member, pl-eve.
type world struct {
	players *memory.PlayerRepository
	leagues *memory.LeagueRepository
	events  *memory.EventRepository
	results *memory.ResultRepository
	ratings *memory.RatingRepository
	chat    *memory.ChatRepository
	logger  *logging.Logger
}

func newWorld(events ...event.Event) world {
	players := append(memory.SeedPlayers(), player.Player{ID: "pl-eve", UserID: "usr-eve", Name: "Eve Ng", Email: "eve@example.com"})
	return world{
		players: memory.NewPlayerRepository(players),
		leagues: memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships()),
		events:  memory.NewEventRepository(events),
		results: memory.NewResultRepository(nil),
		ratings: memory.NewRatingRepository(),
		chat:    memory.NewChatRepository(),
		logger:  logging.NewNop(),
	}
}

// captainsSelectedEvent has Ana and Ben as captains and Cai and Dee waiting
// in the pool, two picks per side.
func captainsSelectedEvent(mode draft.Mode) event.Event {
	now := time.Now().UTC()
	return event.Event{
		ID:           eventIDDraft,
		LeagueID:     memory.LeagueIDSundayFive,
		Title:        "Draft Night",
		Location:     "Riverside Park Pitch 2",
		StartsAt:     now.Add(2 * time.Hour),
		RSVPDeadline: 4 * time.Hour,
		RosterSpots:  6,
		DraftMode:    mode,
		Status:       event.StatusCaptainsSelected,
		PlayerIDs:    []string{"pl-ana", "pl-ben", "pl-cai", "pl-dee"},
		Team1:        team.Team{ID: team1ID, EventID: eventIDDraft, Name: "Bibs", CaptainID: "pl-ana"},
		Team2:        team.Team{ID: team2ID, EventID: eventIDDraft, Name: "Skins", CaptainID: "pl-ben"},
		CreatedBy:    "usr-ana",
		CreatedAt:    now.Add(-48 * time.Hour),
		UpdatedAt:    now.Add(-48 * time.Hour),
	}
}

// draftedEvent is captainsSelectedEvent after Ana took Cai and Ben took Dee.
func draftedEvent() event.Event {
	e := captainsSelectedEvent(draft.ModeAlternating)
	e.Status = event.StatusDrafted
	e.Team1.PlayerIDs = []string{"pl-cai"}
	e.Team2.PlayerIDs = []string{"pl-dee"}
	return e
}

func pendingMembership(playerID string) league.Membership {
	return league.Membership{
		LeagueID:    memory.LeagueIDSundayFive,
		PlayerID:    playerID,
		Status:      league.MembershipPending,
		Role:        league.RoleMember,
		RequestedAt: time.Now().UTC(),
	}
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}
