package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/recliiga/internal/domain/rating"
)

type ratingKey struct {
	leagueID string
	raterID  string
	playerID string
}

type RatingRepository struct {
	mu    sync.RWMutex
	items map[ratingKey]rating.Rating
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{items: make(map[ratingKey]rating.Rating)}
}

func (r *RatingRepository) Upsert(_ context.Context, item rating.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ratingKey{leagueID: item.LeagueID, raterID: item.RaterID, playerID: item.PlayerID}
	if existing, ok := r.items[key]; ok {
		item.CreatedAt = existing.CreatedAt
	}
	r.items[key] = item
	return nil
}

func (r *RatingRepository) ListForPlayer(_ context.Context, leagueID, playerID string) ([]rating.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rating.Rating, 0)
	for key, item := range r.items {
		if key.leagueID == leagueID && key.playerID == playerID {
			out = append(out, item)
		}
	}
	return out, nil
}
