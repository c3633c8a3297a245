package rating

import "context"

type Repository interface {
	Upsert(ctx context.Context, r Rating) error
	ListForPlayer(ctx context.Context, leagueID, playerID string) ([]Rating, error)
}
