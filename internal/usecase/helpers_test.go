package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// seqIDs hands out prefix-1, prefix-2, ...
type seqIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (g *seqIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n), nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func isCtx(want context.Context) func(context.Context) bool {
	return func(v context.Context) bool { return v == want }
}
