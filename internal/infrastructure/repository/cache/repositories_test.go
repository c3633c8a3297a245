package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/recliiga/internal/platform/cache"
)

type countingPlayers struct {
	player.Repository
	byUserCalls int
}

func (c *countingPlayers) GetByUserID(ctx context.Context, userID string) (player.Player, bool, error) {
	c.byUserCalls++
	return c.Repository.GetByUserID(ctx, userID)
}

func TestPlayerRepository_CachesAndInvalidatesOnUpsert(t *testing.T) {
	ctx := context.Background()
	next := &countingPlayers{Repository: memory.NewPlayerRepository(nil)}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	if _, exists, err := repo.GetByUserID(ctx, "usr-1"); err != nil || exists {
		t.Fatalf("expected missing profile, exists=%v err=%v", exists, err)
	}
	if _, _, _ = repo.GetByUserID(ctx, "usr-1"); next.byUserCalls != 1 {
		t.Fatalf("expected negative lookup to be cached, calls=%d", next.byUserCalls)
	}

	if err := repo.Upsert(ctx, player.Player{ID: "pl-1", UserID: "usr-1", Name: "Ana"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, exists, err := repo.GetByUserID(ctx, "usr-1")
	if err != nil || !exists || got.ID != "pl-1" {
		t.Fatalf("expected fresh profile after upsert, got=%+v exists=%v err=%v", got, exists, err)
	}
	if next.byUserCalls != 2 {
		t.Fatalf("expected reload after invalidation, calls=%d", next.byUserCalls)
	}
}

func TestLeagueRepository_MembershipInvalidation(t *testing.T) {
	ctx := context.Background()
	next := memory.NewLeagueRepository(memory.SeedLeagues(), nil)
	repo := NewLeagueRepository(next, basecache.NewStore(time.Minute))

	pending := league.Membership{
		LeagueID: memory.LeagueIDSundayFive,
		PlayerID: "pl-new",
		Status:   league.MembershipPending,
		Role:     league.RoleMember,
	}
	if err := repo.UpsertMembership(ctx, pending); err != nil {
		t.Fatalf("upsert pending: %v", err)
	}
	m, exists, err := repo.GetMembership(ctx, pending.LeagueID, pending.PlayerID)
	if err != nil || !exists || m.Accepted() {
		t.Fatalf("expected pending membership, got=%+v exists=%v err=%v", m, exists, err)
	}

	accepted := pending
	accepted.Status = league.MembershipAccepted
	if err := repo.UpsertMembership(ctx, accepted); err != nil {
		t.Fatalf("upsert accepted: %v", err)
	}
	m, _, _ = repo.GetMembership(ctx, pending.LeagueID, pending.PlayerID)
	if !m.Accepted() {
		t.Fatalf("expected cached membership to be refreshed, got %+v", m)
	}
}
