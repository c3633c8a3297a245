package identity

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/session"
	"github.com/riskibarqy/recliiga/internal/domain/user"
)

func TestSessionStore_PutGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewSessionStore(10)
	now := time.Now()
	store.Put(ctx, session.Session{
		TokenHash: "h1",
		Principal: user.Principal{UserID: "u-1"},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Minute),
	})

	got, ok := store.Get(ctx, "h1")
	if !ok || got.Principal.UserID != "u-1" {
		t.Fatalf("expected session hit, got=%+v ok=%v", got, ok)
	}
	if !store.Delete(ctx, "h1") {
		t.Fatalf("expected delete to report existing session")
	}
	if store.Delete(ctx, "h1") {
		t.Fatalf("second delete should report missing session")
	}
}

func TestSessionStore_Expired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewSessionStore(10)
	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	store.Put(ctx, session.Session{TokenHash: "h1", CreatedAt: base, ExpiresAt: base.Add(time.Minute)})

	if _, ok := store.Get(ctx, "h1"); ok {
		t.Fatalf("expected miss after expiry")
	}
	if store.Len() != 0 {
		t.Fatalf("expired session should be dropped on read")
	}
}

func TestSessionStore_EvictsOldestWhenFull(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewSessionStore(2)
	base := time.Now()
	for i, hash := range []string{"h1", "h2", "h3"} {
		store.Put(ctx, session.Session{
			TokenHash: hash,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			ExpiresAt: base.Add(time.Hour),
		})
	}

	if store.Len() != 2 {
		t.Fatalf("expected bounded store, len=%d", store.Len())
	}
	if _, ok := store.Get(ctx, "h1"); ok {
		t.Fatalf("oldest session should have been evicted")
	}
	if _, ok := store.Get(ctx, "h3"); !ok {
		t.Fatalf("newest session should be kept")
	}
}

func TestSessionStore_ExpiryKeepsRefreshedSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewSessionStore(10)
	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	store.Put(ctx, session.Session{TokenHash: "h1", CreatedAt: base, ExpiresAt: base.Add(time.Minute)})

	// The token is re-verified between the expired read and the eviction.
	later := base.Add(2 * time.Minute)
	store.now = func() time.Time {
		store.Put(ctx, session.Session{
			TokenHash: "h1",
			Principal: user.Principal{UserID: "u-1"},
			CreatedAt: later,
			ExpiresAt: later.Add(time.Minute),
		})
		return later
	}
	if _, ok := store.Get(ctx, "h1"); ok {
		t.Fatalf("expired read should miss")
	}

	store.now = func() time.Time { return later }
	got, ok := store.Get(ctx, "h1")
	if !ok || got.Principal.UserID != "u-1" {
		t.Fatalf("refreshed session was evicted, got=%+v ok=%v", got, ok)
	}
}
