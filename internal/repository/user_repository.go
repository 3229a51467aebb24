package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sahamwatch/internal/domain"
	"sahamwatch/internal/storage"
)

const usersBucket = "users"

// UserRepositoryImpl implements the UserRepository interface over the KV store.
// Accounts are stored one document per user id; username lookups scan the
// bucket, which is fine at personal-watchlist scale.
type UserRepositoryImpl struct {
	store storage.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store storage.Store) domain.UserRepository {
	return &UserRepositoryImpl{store: store}
}

// Create creates a new user
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	existing, err := r.GetByUsername(ctx, user.Username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrUsernameTaken
	}

	data, err := json.Marshal(storedUser{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := r.store.Put(ctx, usersBucket, user.ID.String(), data); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	data, err := r.store.Get(ctx, usersBucket, id.String())
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return decodeUser(data)
}

// GetByUsername retrieves a user by username
func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	keys, err := r.store.List(ctx, usersBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for _, key := range keys {
		data, err := r.store.Get(ctx, usersBucket, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue // removed between list and read
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read user %s: %w", key, err)
		}

		user, err := decodeUser(data)
		if err != nil {
			return nil, err
		}
		if user.Username == username {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// storedUser is the persisted shape of a user. The domain type hides the
// password hash from JSON, so persistence uses its own struct.
type storedUser struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func decodeUser(data []byte) (*domain.User, error) {
	var s storedUser
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &domain.User{
		ID:           s.ID,
		Username:     s.Username,
		PasswordHash: s.PasswordHash,
		CreatedAt:    s.CreatedAt,
	}, nil
}
