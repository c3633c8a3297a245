package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/recliiga/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[string]player.Player
	byUser map[string]string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		items:  make(map[string]player.Player, len(players)),
		byUser: make(map[string]string, len(players)),
	}
	for _, p := range players {
		r.items[p.ID] = clonePlayer(p)
		r.byUser[p.UserID] = p.ID
	}
	return r
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = clonePlayer(p)
	r.byUser[p.UserID] = p.ID
	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) GetByUserID(_ context.Context, userID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[userID]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(r.items[id]), true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.items[id]; ok {
			out = append(out, clonePlayer(p))
		}
	}
	return out, nil
}

func clonePlayer(p player.Player) player.Player {
	p.Positions = slices.Clone(p.Positions)
	return p
}
