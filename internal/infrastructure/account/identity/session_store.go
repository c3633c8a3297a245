package identity

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/session"
)

// SessionStore is a bounded in-process session.Store. Expired sessions are
// dropped lazily on read and eagerly when the store is full.
type SessionStore struct {
	mu         sync.RWMutex
	entries    map[string]session.Session
	maxEntries int
	now        func() time.Time
}

func NewSessionStore(maxEntries int) *SessionStore {
	return &SessionStore{
		entries:    make(map[string]session.Session),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *SessionStore) Get(_ context.Context, tokenHash string) (session.Session, bool) {
	s.mu.RLock()
	entry, ok := s.entries[tokenHash]
	s.mu.RUnlock()
	if !ok {
		return session.Session{}, false
	}
	now := s.now()
	if entry.Expired(now) {
		s.mu.Lock()
		// A concurrent Put may have refreshed the token since the read.
		if cur, ok := s.entries[tokenHash]; ok && cur.Expired(now) {
			delete(s.entries, tokenHash)
		}
		s.mu.Unlock()
		return session.Session{}, false
	}

	return entry, true
}

func (s *SessionStore) Put(_ context.Context, sess session.Session) {
	if sess.TokenHash == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[sess.TokenHash]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictExpired(s.now())
		if len(s.entries) >= s.maxEntries {
			s.evictOldest()
		}
	}
	s.entries[sess.TokenHash] = sess
}

func (s *SessionStore) Delete(_ context.Context, tokenHash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[tokenHash]
	delete(s.entries, tokenHash)
	return ok
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *SessionStore) evictExpired(now time.Time) {
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
		}
	}
}

func (s *SessionStore) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, entry := range s.entries {
		if oldestKey == "" || entry.CreatedAt.Before(oldestAt) {
			oldestKey, oldestAt = key, entry.CreatedAt
		}
	}
	delete(s.entries, oldestKey)
}
