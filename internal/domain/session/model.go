package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/user"
)

// Session is a signed-in principal bound to one access token. It is created
// on the first successful verification and destroyed on sign-out or expiry.
type Session struct {
	TokenHash string
	Principal user.Principal
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// HashToken keeps raw bearer tokens out of memory maps and logs.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
