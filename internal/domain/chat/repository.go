package chat

import "context"

// Repository is the league message store.
type Repository interface {
	Append(ctx context.Context, m Message) error
	// ListByLeague returns up to limit messages, newest first.
	ListByLeague(ctx context.Context, leagueID string, limit int) ([]Message, error)
}
