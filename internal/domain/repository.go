package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository defines the interface for account data operations
type UserRepository interface {
	// Create creates a new user; fails with ErrUsernameTaken on a duplicate username
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID; ErrNotFound when absent
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username (case-sensitive); ErrNotFound when absent
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// WatchlistRepository defines the interface for per-user position lists
type WatchlistRepository interface {
	// List retrieves all positions for a user; an absent list is empty, not an error
	List(ctx context.Context, userID uuid.UUID) ([]Position, error)

	// Add appends a position; fails with ErrDuplicateCode when the code is already present
	Add(ctx context.Context, userID uuid.UUID, position Position) error

	// Remove deletes the position with the given code, reporting whether it existed
	Remove(ctx context.Context, userID uuid.UUID, code string) (bool, error)

	// UpdateCurrentPrices persists last-known prices keyed by code.
	// Codes without a stored position are ignored.
	UpdateCurrentPrices(ctx context.Context, userID uuid.UUID, prices map[string]float64) error
}

// QuoteCacheRepository persists the last successfully fetched quote batch
type QuoteCacheRepository interface {
	// Load returns the persisted batch, or nil when none exists.
	// A corrupt or unreadable cache is treated as absent, never as an error.
	Load(ctx context.Context) (*QuoteBatch, error)

	// Save persists the batch, atomically replacing any prior one
	Save(ctx context.Context, batch *QuoteBatch) error
}

// SessionRepository defines the interface for issued-token records
type SessionRepository interface {
	// Save stores a new session keyed by token ID
	Save(ctx context.Context, session *Session) error

	// Get retrieves a session by token ID; ErrNotFound when absent
	Get(ctx context.Context, id string) (*Session, error)

	// Revoke marks a session revoked; ErrNotFound when absent
	Revoke(ctx context.Context, id string) error

	// DeleteExpired removes sessions that expired before now, returning how many
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
