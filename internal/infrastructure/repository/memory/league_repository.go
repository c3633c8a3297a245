package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	items   map[string]league.League
	members map[string]map[string]league.Membership
}

func NewLeagueRepository(leagues []league.League, memberships []league.Membership) *LeagueRepository {
	r := &LeagueRepository{
		items:   make(map[string]league.League, len(leagues)),
		members: make(map[string]map[string]league.Membership, len(leagues)),
	}
	for _, l := range leagues {
		r.items[l.ID] = l
	}
	for _, m := range memberships {
		r.putMembership(m)
	}
	return r
}

func (r *LeagueRepository) Create(_ context.Context, l league.League, owner league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[l.ID]; exists {
		return fmt.Errorf("%w: league=%s already exists", usecase.ErrConflict, l.ID)
	}
	for _, existing := range r.items {
		if existing.InviteCode == l.InviteCode {
			return fmt.Errorf("%w: invite code already in use", usecase.ErrConflict)
		}
	}
	r.items[l.ID] = l
	r.putMembership(owner)
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	return l, ok, nil
}

func (r *LeagueRepository) GetByInviteCode(_ context.Context, code string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.items {
		if l.InviteCode == code {
			return l, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *LeagueRepository) ListByPlayer(_ context.Context, playerID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for leagueID, byPlayer := range r.members {
		if m, ok := byPlayer[playerID]; ok && m.Accepted() {
			out = append(out, r.items[leagueID])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LeagueRepository) UpsertMembership(_ context.Context, m league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[m.LeagueID]; !ok {
		return fmt.Errorf("upsert membership: league=%s not found", m.LeagueID)
	}
	r.putMembership(m)
	return nil
}

func (r *LeagueRepository) GetMembership(_ context.Context, leagueID, playerID string) (league.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[leagueID][playerID]
	return m, ok, nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.Membership, 0, len(r.members[leagueID]))
	for _, m := range r.members[leagueID] {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.Before(out[j].RequestedAt)
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *LeagueRepository) putMembership(m league.Membership) {
	byPlayer, ok := r.members[m.LeagueID]
	if !ok {
		byPlayer = make(map[string]league.Membership)
		r.members[m.LeagueID] = byPlayer
	}
	byPlayer[m.PlayerID] = m
}
