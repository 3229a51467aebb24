package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"sahamwatch/internal/domain"
)

// QuoteCacheService serves the latest quote batch through a time-windowed
// cache. Staleness is checked lazily on each read; there is no background
// refresh. Concurrent readers that both observe a stale cache may both
// fetch, which is at most duplicated work: the batch is replaced wholesale
// and atomically, so the last successful write wins.
type QuoteCacheService struct {
	fetcher   domain.QuoteFetcher
	cacheRepo domain.QuoteCacheRepository
	maxAge    time.Duration
	log       zerolog.Logger
}

// NewQuoteCacheService creates a new QuoteCacheService
func NewQuoteCacheService(
	fetcher domain.QuoteFetcher,
	cacheRepo domain.QuoteCacheRepository,
	maxAge time.Duration,
	log zerolog.Logger,
) *QuoteCacheService {
	return &QuoteCacheService{
		fetcher:   fetcher,
		cacheRepo: cacheRepo,
		maxAge:    maxAge,
		log:       log.With().Str("component", "quote_service").Logger(),
	}
}

// GetQuotes returns the latest quote batch. Order of preference:
// fresh cache, newly fetched batch, stale cache. It fails only when the
// fetch fails and nothing was ever cached.
func (s *QuoteCacheService) GetQuotes(ctx context.Context) (*domain.QuoteBatch, error) {
	cached, err := s.cacheRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if cached != nil && cached.Age(time.Now()) < s.maxAge {
		s.log.Debug().
			Dur("age", cached.Age(time.Now())).
			Msg("Serving quotes from cache")
		return cached, nil
	}

	batch, err := s.fetcher.Fetch(ctx)
	if err != nil {
		if cached != nil {
			// Stale data beats no data
			s.log.Warn().Err(err).
				Dur("age", cached.Age(time.Now())).
				Msg("Fetch failed, serving stale quotes")
			return cached, nil
		}
		s.log.Error().Err(err).Msg("Fetch failed with no cached quotes")
		return nil, err
	}

	if err := s.cacheRepo.Save(ctx, batch); err != nil {
		// The fresh batch is still good for this request
		s.log.Error().Err(err).Msg("Failed to persist quote batch")
	} else {
		s.log.Info().
			Int("tickers", len(batch.Quotes)).
			Msg("Refreshed quote cache")
	}
	return batch, nil
}

// GetCachedQuotes returns whatever batch is persisted without fetching
func (s *QuoteCacheService) GetCachedQuotes(ctx context.Context) (*domain.QuoteBatch, error) {
	cached, err := s.cacheRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cached == nil {
		return nil, domain.ErrUpstream
	}
	return cached, nil
}
