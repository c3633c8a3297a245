package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "board", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "leaderboard:l1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "board" {
				errCh <- errors.New("unexpected value")
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Second)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
	if store.Len() != 0 {
		t.Fatalf("expired entry should be evicted, len=%d", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "leaderboard:l1", 1)
	store.Set(ctx, "leaderboard:l2", 2)
	store.Set(ctx, "event:e1", 3)

	store.DeletePrefix(ctx, "leaderboard:")

	if _, ok := store.Get(ctx, "leaderboard:l1"); ok {
		t.Fatalf("expected prefix delete")
	}
	if _, ok := store.Get(ctx, "event:e1"); !ok {
		t.Fatalf("unrelated key should survive")
	}
}

func TestLoad_TypedAndErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	got, err := Load(ctx, store, "n", func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("Load()=%d,%v", got, err)
	}

	boom := errors.New("boom")
	if _, err := Load(ctx, store, "x", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(ctx, "x"); ok {
		t.Fatalf("failed loads must not be cached")
	}

	if _, err := store.GetOrLoad(ctx, "y", nil); !errors.Is(err, ErrLoaderRequired) {
		t.Fatalf("expected ErrLoaderRequired, got %v", err)
	}
}

func TestStore_InvalidationDuringLoadIsNotCached(t *testing.T) {
	t.Parallel()

	invalidations := []struct {
		name       string
		invalidate func(*Store)
	}{
		{name: "delete", invalidate: func(s *Store) { s.Delete(context.Background(), "leaderboard:l1") }},
		{name: "delete prefix", invalidate: func(s *Store) { s.DeletePrefix(context.Background(), "leaderboard:") }},
	}

	for _, tt := range invalidations {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := NewStore(time.Minute)
			ctx := context.Background()
			started := make(chan struct{})
			release := make(chan struct{})
			done := make(chan any, 1)

			go func() {
				v, _ := store.GetOrLoad(ctx, "leaderboard:l1", func(context.Context) (any, error) {
					close(started)
					<-release
					return "stale", nil
				})
				done <- v
			}()

			<-started
			tt.invalidate(store)
			close(release)
			if v := <-done; v != "stale" {
				t.Fatalf("in-flight caller should still get its value, got %v", v)
			}

			if v, ok := store.Get(ctx, "leaderboard:l1"); ok {
				t.Fatalf("value loaded before invalidation was cached: %v", v)
			}
			v, err := store.GetOrLoad(ctx, "leaderboard:l1", func(context.Context) (any, error) { return "fresh", nil })
			if err != nil || v != "fresh" {
				t.Fatalf("GetOrLoad()=%v,%v want fresh", v, err)
			}
			if v, ok := store.Get(ctx, "leaderboard:l1"); !ok || v != "fresh" {
				t.Fatalf("expected fresh value cached, got %v ok=%v", v, ok)
			}
		})
	}
}
