package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, l League, owner Membership) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByInviteCode(ctx context.Context, code string) (League, bool, error)
	ListByPlayer(ctx context.Context, playerID string) ([]League, error)

	UpsertMembership(ctx context.Context, m Membership) error
	GetMembership(ctx context.Context, leagueID, playerID string) (Membership, bool, error)
	ListMembers(ctx context.Context, leagueID string) ([]Membership, error)
}
