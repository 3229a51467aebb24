package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sahamwatch/internal/domain"
	"sahamwatch/internal/storage"
)

const sessionsBucket = "sessions"

// SessionRepositoryImpl implements the SessionRepository interface.
// Sessions are keyed by the token's jti claim.
type SessionRepositoryImpl struct {
	store storage.Store
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(store storage.Store) domain.SessionRepository {
	return &SessionRepositoryImpl{store: store}
}

// Save stores a new session
func (r *SessionRepositoryImpl) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.store.Put(ctx, sessionsBucket, session.ID, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get retrieves a session by token ID
func (r *SessionRepositoryImpl) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.store.Get(ctx, sessionsBucket, id)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Revoke marks a session revoked
func (r *SessionRepositoryImpl) Revoke(ctx context.Context, id string) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	session.RevokedAt = &now
	return r.Save(ctx, session)
}

// DeleteExpired removes sessions that expired before now
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	keys, err := r.store.List(ctx, sessionsBucket)
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	deleted := 0
	for _, key := range keys {
		session, err := r.Get(ctx, key)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		if session.ExpiresAt.After(now) {
			continue
		}
		if _, err := r.store.Delete(ctx, sessionsBucket, key); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
