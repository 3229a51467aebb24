package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"sahamwatch/internal/domain"
	"sahamwatch/internal/storage"
)

const (
	quotesBucket  = "quotes"
	quoteCacheKey = "summary"
)

// QuoteCacheRepositoryImpl implements the QuoteCacheRepository interface.
// The whole quote batch is one document, replaced wholesale on every save.
// A corrupt or unreadable cache is reported as absent: a degraded market
// data cache must never block the rest of the application.
type QuoteCacheRepositoryImpl struct {
	store storage.Store
	log   zerolog.Logger
}

// NewQuoteCacheRepository creates a new QuoteCacheRepository
func NewQuoteCacheRepository(store storage.Store, log zerolog.Logger) domain.QuoteCacheRepository {
	return &QuoteCacheRepositoryImpl{
		store: store,
		log:   log.With().Str("component", "quote_cache").Logger(),
	}
}

// Load returns the persisted batch, or nil when none exists
func (r *QuoteCacheRepositoryImpl) Load(ctx context.Context) (*domain.QuoteBatch, error) {
	data, err := r.store.Get(ctx, quotesBucket, quoteCacheKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Warn().Err(err).Msg("Quote cache unreadable, treating as absent")
		return nil, nil
	}

	var batch domain.QuoteBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		r.log.Warn().Err(err).Msg("Quote cache corrupt, treating as absent")
		return nil, nil
	}
	return &batch, nil
}

// Save persists the batch, replacing any prior one
func (r *QuoteCacheRepositoryImpl) Save(ctx context.Context, batch *domain.QuoteBatch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal quote batch: %w", err)
	}
	if err := r.store.Put(ctx, quotesBucket, quoteCacheKey, data); err != nil {
		return fmt.Errorf("failed to save quote batch: %w", err)
	}
	return nil
}
