package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"sahamwatch/internal/domain"
	"sahamwatch/internal/storage"
)

const watchlistsBucket = "watchlists"

// WatchlistRepositoryImpl implements the WatchlistRepository interface.
// Each user's watchlist is one JSON array document keyed by user id, so the
// write path is read-whole, mutate, replace-whole. Replacement is atomic at
// the storage layer; per-user races are tolerated since a single user is
// not expected to issue concurrent conflicting writes.
type WatchlistRepositoryImpl struct {
	store storage.Store
}

// NewWatchlistRepository creates a new WatchlistRepository
func NewWatchlistRepository(store storage.Store) domain.WatchlistRepository {
	return &WatchlistRepositoryImpl{store: store}
}

// List retrieves all positions for a user
func (r *WatchlistRepositoryImpl) List(ctx context.Context, userID uuid.UUID) ([]domain.Position, error) {
	data, err := r.store.Get(ctx, watchlistsBucket, userID.String())
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []domain.Position{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	var positions []domain.Position
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal watchlist: %w", err)
	}
	return positions, nil
}

// Add appends a position to the user's watchlist
func (r *WatchlistRepositoryImpl) Add(ctx context.Context, userID uuid.UUID, position domain.Position) error {
	positions, err := r.List(ctx, userID)
	if err != nil {
		return err
	}

	for _, p := range positions {
		if p.Code == position.Code {
			return domain.ErrDuplicateCode
		}
	}

	positions = append(positions, position)
	return r.save(ctx, userID, positions)
}

// Remove deletes the position with the given code
func (r *WatchlistRepositoryImpl) Remove(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	positions, err := r.List(ctx, userID)
	if err != nil {
		return false, err
	}

	kept := positions[:0]
	for _, p := range positions {
		if p.Code != code {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(positions) {
		return false, nil
	}

	if err := r.save(ctx, userID, kept); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateCurrentPrices persists last-known prices for the given codes
func (r *WatchlistRepositoryImpl) UpdateCurrentPrices(ctx context.Context, userID uuid.UUID, prices map[string]float64) error {
	if len(prices) == 0 {
		return nil
	}

	positions, err := r.List(ctx, userID)
	if err != nil {
		return err
	}

	changed := false
	for i := range positions {
		if price, ok := prices[positions[i].Code]; ok && positions[i].CurrentPrice != price {
			positions[i].CurrentPrice = price
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.save(ctx, userID, positions)
}

func (r *WatchlistRepositoryImpl) save(ctx context.Context, userID uuid.UUID, positions []domain.Position) error {
	data, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}
	if err := r.store.Put(ctx, watchlistsBucket, userID.String(), data); err != nil {
		return fmt.Errorf("failed to save watchlist: %w", err)
	}
	return nil
}
