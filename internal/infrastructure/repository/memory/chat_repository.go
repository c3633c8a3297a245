package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/recliiga/internal/domain/chat"
)

// ChatRepository keeps league messages in append order.
type ChatRepository struct {
	mu       sync.RWMutex
	byLeague map[string][]chat.Message
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{byLeague: make(map[string][]chat.Message)}
}

func (r *ChatRepository) Append(_ context.Context, m chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLeague[m.LeagueID] = append(r.byLeague[m.LeagueID], m)
	return nil
}

func (r *ChatRepository) ListByLeague(_ context.Context, leagueID string, limit int) ([]chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byLeague[leagueID]
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}
	out := make([]chat.Message, 0, limit)
	for i := len(items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, items[i])
	}
	return out, nil
}
