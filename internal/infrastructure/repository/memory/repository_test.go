package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/chat"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/result"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

func TestEventRepository_SetRSVPFullRoster(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository([]event.Event{{
		ID:          "evt-pair",
		LeagueID:    LeagueIDSundayFive,
		RosterSpots: 2,
		Status:      event.StatusOpen,
		PlayerIDs:   []string{"pl-ana", "pl-ben"},
	}})

	if err := repo.SetRSVP(ctx, "evt-pair", "pl-ana", true); err != nil {
		t.Fatalf("repeat rsvp on full roster: %v", err)
	}
	if err := repo.SetRSVP(ctx, "evt-pair", "pl-cai", true); !errors.Is(err, event.ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
	if err := repo.SetRSVP(ctx, "evt-pair", "pl-ben", false); err != nil {
		t.Fatalf("withdraw rsvp: %v", err)
	}
	if err := repo.SetRSVP(ctx, "evt-pair", "pl-cai", true); err != nil {
		t.Fatalf("rsvp after withdrawal: %v", err)
	}
}

func TestEventRepository_RSVPAndPicks(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(SeedEvents())

	if err := repo.SetRSVP(ctx, EventIDSeedKickoff, "pl-cai", true); err != nil {
		t.Fatalf("set rsvp: %v", err)
	}
	if err := repo.SetRSVP(ctx, EventIDSeedKickoff, "pl-cai", true); err != nil {
		t.Fatalf("repeat rsvp: %v", err)
	}
	if err := repo.SetRSVP(ctx, EventIDSeedKickoff, "pl-ben", false); err != nil {
		t.Fatalf("withdraw rsvp: %v", err)
	}

	got, ok, err := repo.GetByID(ctx, EventIDSeedKickoff)
	if err != nil || !ok {
		t.Fatalf("get event: ok=%v err=%v", ok, err)
	}
	if len(got.PlayerIDs) != 2 || got.PlayerIDs[0] != "pl-ana" || got.PlayerIDs[1] != "pl-cai" {
		t.Fatalf("unexpected rsvps: %v", got.PlayerIDs)
	}

	if err := repo.AddPick(ctx, EventIDSeedKickoff, got.Team1.ID, "pl-cai"); err != nil {
		t.Fatalf("add pick: %v", err)
	}
	err = repo.AddPick(ctx, EventIDSeedKickoff, got.Team2.ID, "pl-cai")
	if !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected conflict on duplicate pick, got %v", err)
	}

	// Mutating a returned copy must not leak into the store.
	got.PlayerIDs[0] = "mutated"
	again, _, _ := repo.GetByID(ctx, EventIDSeedKickoff)
	if again.PlayerIDs[0] != "pl-ana" {
		t.Fatalf("stored event was aliased: %v", again.PlayerIDs)
	}
	if len(again.Team1.PlayerIDs) != 1 {
		t.Fatalf("expected one pick on team 1, got %v", again.Team1.PlayerIDs)
	}
}

func TestEventRepository_ListDeadlineBetween(t *testing.T) {
	repo := NewEventRepository(SeedEvents())
	deadline := SeedEvents()[0].DeadlineAt()

	items, err := repo.ListDeadlineBetween(context.Background(), deadline.Add(-time.Hour), deadline.Add(time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected seeded event in window, got %d", len(items))
	}

	items, _ = repo.ListDeadlineBetween(context.Background(), deadline.Add(time.Minute), deadline.Add(time.Hour))
	if len(items) != 0 {
		t.Fatalf("expected empty window, got %d", len(items))
	}
}

func TestResultRepository_UpsertKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewResultRepository(nil)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, result.Result{ID: "res-1", EventID: "evt-1", Team1Score: 2, CreatedAt: created})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, result.Result{ID: "res-2", EventID: "evt-1", Team1Score: 3, CreatedAt: created.Add(time.Hour)})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID || !second.CreatedAt.Equal(created) {
		t.Fatalf("expected original identity, got id=%s created=%s", second.ID, second.CreatedAt)
	}
	if second.Team1Score != 3 {
		t.Fatalf("expected updated score, got %d", second.Team1Score)
	}
}

func TestLeagueRepository_ListByPlayerOnlyAccepted(t *testing.T) {
	ctx := context.Background()
	repo := NewLeagueRepository(SeedLeagues(), SeedMemberships())

	items, err := repo.ListByPlayer(ctx, "pl-ben")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != LeagueIDSundayFive {
		t.Fatalf("unexpected leagues: %+v", items)
	}

	items, _ = repo.ListByPlayer(ctx, "pl-unknown")
	if len(items) != 0 {
		t.Fatalf("expected no leagues, got %d", len(items))
	}
}

func TestChatRepository_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository()
	for _, id := range []string{"m1", "m2", "m3"} {
		if err := repo.Append(ctx, chat.Message{ID: id, LeagueID: "lg", SenderID: "p", Body: id}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	items, err := repo.ListByLeague(ctx, "lg", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != "m3" || items[1].ID != "m2" {
		t.Fatalf("unexpected order: %+v", items)
	}
}
