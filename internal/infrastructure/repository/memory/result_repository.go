package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/recliiga/internal/domain/result"
)

type ResultRepository struct {
	mu      sync.RWMutex
	byEvent map[string]result.Result
}

func NewResultRepository(results []result.Result) *ResultRepository {
	r := &ResultRepository{byEvent: make(map[string]result.Result, len(results))}
	for _, item := range results {
		r.byEvent[item.EventID] = cloneResult(item)
	}
	return r
}

func (r *ResultRepository) Upsert(_ context.Context, item result.Result) (result.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byEvent[item.EventID]; ok {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	}
	r.byEvent[item.EventID] = cloneResult(item)
	return cloneResult(item), nil
}

func (r *ResultRepository) GetByEvent(_ context.Context, eventID string) (result.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byEvent[eventID]
	if !ok {
		return result.Result{}, false, nil
	}
	return cloneResult(item), true, nil
}

func (r *ResultRepository) ListByEvents(_ context.Context, eventIDs []string) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Result, 0, len(eventIDs))
	for _, id := range eventIDs {
		if item, ok := r.byEvent[id]; ok {
			out = append(out, cloneResult(item))
		}
	}
	return out, nil
}

func cloneResult(item result.Result) result.Result {
	item.AttendingPlayerIDs = slices.Clone(item.AttendingPlayerIDs)
	return item
}
