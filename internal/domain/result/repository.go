package result

import "context"

// Repository describes result persistence needs from use cases.
type Repository interface {
	// Upsert stores r as the single result of r.EventID and returns the
	// stored row, keeping the original ID and CreatedAt on edits.
	Upsert(ctx context.Context, r Result) (Result, error)
	GetByEvent(ctx context.Context, eventID string) (Result, bool, error)
	ListByEvents(ctx context.Context, eventIDs []string) ([]Result, error)
}
