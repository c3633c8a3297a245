package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/session"
	"github.com/riskibarqy/recliiga/internal/domain/user"
)

// TokenVerifier checks bearer tokens against the identity provider.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (user.Principal, error)
}

// SessionService owns the sign-in/sign-out lifecycle. A session is created
// the first time a token verifies and removed on sign-out or expiry.
type SessionService struct {
	store    session.Store
	verifier TokenVerifier
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(store session.Store, verifier TokenVerifier, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SessionService{
		store:    store,
		verifier: verifier,
		ttl:      ttl,
		now:      time.Now,
	}
}

// VerifyAccessToken resolves the principal for token, serving it from the
// session store when possible.
func (s *SessionService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", ErrUnauthorized)
	}

	hash := session.HashToken(token)
	now := s.now()
	if sess, ok := s.store.Get(ctx, hash); ok {
		if !sess.Expired(now) {
			return sess.Principal, nil
		}
		s.store.Delete(ctx, hash)
	}

	principal, err := s.verifier.VerifyAccessToken(ctx, token)
	if err != nil {
		return user.Principal{}, err
	}
	if err := principal.Validate(); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	s.store.Put(ctx, session.Session{
		TokenHash: hash,
		Principal: principal,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
	return principal, nil
}

// TokenRevoker is implemented by verifiers that can invalidate a token at
// the provider, so a signed-out token cannot open a new session.
type TokenRevoker interface {
	RevokeAccessToken(ctx context.Context, token string) error
}

// SignOut destroys the session bound to token and revokes the token when the
// verifier supports it. It reports whether a local session existed.
func (s *SessionService) SignOut(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, fmt.Errorf("%w: token is required", ErrUnauthorized)
	}

	existed := s.store.Delete(ctx, session.HashToken(token))
	if revoker, ok := s.verifier.(TokenRevoker); ok {
		if err := revoker.RevokeAccessToken(ctx, token); err != nil {
			return existed, fmt.Errorf("revoke access token: %w", err)
		}
	}
	return existed, nil
}
