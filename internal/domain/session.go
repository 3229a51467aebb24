package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session records one issued auth token, keyed by the token's jti claim.
// A session is live until it expires or is revoked by logout.
type Session struct {
	ID        string     `json:"id"` // token jti
	UserID    uuid.UUID  `json:"user_id"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// IsActive reports whether the session is neither revoked nor expired at now
func (s *Session) IsActive(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	return now.Before(s.ExpiresAt)
}
