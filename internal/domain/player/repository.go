package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, p Player) error
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByUserID(ctx context.Context, userID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
}
