package cache

import (
	"context"
	"slices"

	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	basecache "github.com/riskibarqy/recliiga/internal/platform/cache"
)

type cachedPlayer struct {
	value  player.Player
	exists bool
}

// PlayerRepository caches profile lookups. Every authenticated request
// resolves the actor by user id, so this sits on the hot path.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		return err
	}
	r.cache.Delete(ctx, "player:id:"+p.ID)
	r.cache.Delete(ctx, "player:user:"+p.UserID)
	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "player:id:"+playerID, func(ctx context.Context) (cachedPlayer, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		return cachedPlayer{value: item, exists: exists}, err
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return clonePlayer(cached.value), cached.exists, nil
}

func (r *PlayerRepository) GetByUserID(ctx context.Context, userID string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "player:user:"+userID, func(ctx context.Context) (cachedPlayer, error) {
		item, exists, err := r.next.GetByUserID(ctx, userID)
		return cachedPlayer{value: item, exists: exists}, err
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return clonePlayer(cached.value), cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	return r.next.GetByIDs(ctx, playerIDs)
}

func clonePlayer(p player.Player) player.Player {
	p.Positions = slices.Clone(p.Positions)
	return p
}

type cachedLeague struct {
	value  league.League
	exists bool
}

type cachedMembership struct {
	value  league.Membership
	exists bool
}

// LeagueRepository caches league and membership lookups used by every
// access check. Writes drop the affected keys.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League, owner league.Membership) error {
	if err := r.next.Create(ctx, l, owner); err != nil {
		return err
	}
	r.cache.Delete(ctx, "league:id:"+l.ID)
	r.cache.Delete(ctx, "league:invite:"+l.InviteCode)
	r.cache.Delete(ctx, membershipKey(owner.LeagueID, owner.PlayerID))
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "league:id:"+leagueID, func(ctx context.Context) (cachedLeague, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		return cachedLeague{value: item, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, code string) (league.League, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "league:invite:"+code, func(ctx context.Context) (cachedLeague, error) {
		item, exists, err := r.next.GetByInviteCode(ctx, code)
		return cachedLeague{value: item, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) ListByPlayer(ctx context.Context, playerID string) ([]league.League, error) {
	return r.next.ListByPlayer(ctx, playerID)
}

func (r *LeagueRepository) UpsertMembership(ctx context.Context, m league.Membership) error {
	if err := r.next.UpsertMembership(ctx, m); err != nil {
		return err
	}
	r.cache.Delete(ctx, membershipKey(m.LeagueID, m.PlayerID))
	return nil
}

func (r *LeagueRepository) GetMembership(ctx context.Context, leagueID, playerID string) (league.Membership, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, membershipKey(leagueID, playerID), func(ctx context.Context) (cachedMembership, error) {
		item, exists, err := r.next.GetMembership(ctx, leagueID, playerID)
		return cachedMembership{value: item, exists: exists}, err
	})
	if err != nil {
		return league.Membership{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Membership, error) {
	return r.next.ListMembers(ctx, leagueID)
}

func membershipKey(leagueID, playerID string) string {
	return "league:member:" + leagueID + ":" + playerID
}
