package session

import "context"

// Store holds live sessions keyed by token hash.
type Store interface {
	Get(ctx context.Context, tokenHash string) (Session, bool)
	Put(ctx context.Context, s Session)
	Delete(ctx context.Context, tokenHash string) bool
}
