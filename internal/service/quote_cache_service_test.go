package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sahamwatch/internal/domain"
	"sahamwatch/internal/repository"
	"sahamwatch/internal/storage"
)

// fakeFetcher counts calls and returns a canned batch or error
type fakeFetcher struct {
	batch *domain.QuoteBatch
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*domain.QuoteBatch, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func setupCacheRepo(t *testing.T) domain.QuoteCacheRepository {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return repository.NewQuoteCacheRepository(store, zerolog.Nop())
}

func batchAgedBy(age time.Duration, price float64) *domain.QuoteBatch {
	return &domain.QuoteBatch{
		FetchedAt: time.Now().Add(-age),
		Quotes:    []domain.QuoteRecord{{Code: "BBCA", LastPrice: price, PreviousClose: 9200}},
	}
}

func TestGetQuotesFreshCacheSkipsFetch(t *testing.T) {
	ctx := context.Background()
	cacheRepo := setupCacheRepo(t)
	require.NoError(t, cacheRepo.Save(ctx, batchAgedBy(30*time.Minute, 8500)))

	fetcher := &fakeFetcher{batch: batchAgedBy(0, 9999)}
	svc := NewQuoteCacheService(fetcher, cacheRepo, time.Hour, zerolog.Nop())

	batch, err := svc.GetQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8500.0, batch.Quotes[0].LastPrice)
	assert.Zero(t, fetcher.calls)
}

func TestGetQuotesStaleCacheRefetchesAndPersists(t *testing.T) {
	ctx := context.Background()
	cacheRepo := setupCacheRepo(t)
	require.NoError(t, cacheRepo.Save(ctx, batchAgedBy(2*time.Hour, 8500)))

	fetcher := &fakeFetcher{batch: batchAgedBy(0, 8700)}
	svc := NewQuoteCacheService(fetcher, cacheRepo, time.Hour, zerolog.Nop())

	batch, err := svc.GetQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8700.0, batch.Quotes[0].LastPrice)
	assert.Equal(t, 1, fetcher.calls)

	// New batch replaced the persisted one
	persisted, err := cacheRepo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8700.0, persisted.Quotes[0].LastPrice)
}

func TestGetQuotesStaleFallbackOnFetchFailure(t *testing.T) {
	ctx := context.Background()
	cacheRepo := setupCacheRepo(t)
	require.NoError(t, cacheRepo.Save(ctx, batchAgedBy(2*time.Hour, 8500)))

	fetcher := &fakeFetcher{err: domain.ErrUpstream}
	svc := NewQuoteCacheService(fetcher, cacheRepo, time.Hour, zerolog.Nop())

	batch, err := svc.GetQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8500.0, batch.Quotes[0].LastPrice)
	assert.Equal(t, 1, fetcher.calls)
}

func TestGetQuotesNoCacheFetchFailurePropagates(t *testing.T) {
	fetcher := &fakeFetcher{err: domain.ErrUpstream}
	svc := NewQuoteCacheService(fetcher, setupCacheRepo(t), time.Hour, zerolog.Nop())

	_, err := svc.GetQuotes(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGetQuotesMissingCacheTriggersFetch(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{batch: batchAgedBy(0, 8700)}
	cacheRepo := setupCacheRepo(t)
	svc := NewQuoteCacheService(fetcher, cacheRepo, time.Hour, zerolog.Nop())

	batch, err := svc.GetQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.Len(t, batch.Quotes, 1)

	// Second read within the window serves the cache
	_, err = svc.GetQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestGetQuotesSaveFailureStillReturnsFreshBatch(t *testing.T) {
	fetcher := &fakeFetcher{batch: batchAgedBy(0, 8700)}
	svc := NewQuoteCacheService(fetcher, &failingSaveRepo{}, time.Hour, zerolog.Nop())

	batch, err := svc.GetQuotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8700.0, batch.Quotes[0].LastPrice)
}

type failingSaveRepo struct{}

func (r *failingSaveRepo) Load(ctx context.Context) (*domain.QuoteBatch, error) {
	return nil, nil
}

func (r *failingSaveRepo) Save(ctx context.Context, batch *domain.QuoteBatch) error {
	return errors.New("disk full")
}

func TestGetCachedQuotes(t *testing.T) {
	ctx := context.Background()
	cacheRepo := setupCacheRepo(t)
	fetcher := &fakeFetcher{batch: batchAgedBy(0, 9999)}
	svc := NewQuoteCacheService(fetcher, cacheRepo, time.Hour, zerolog.Nop())

	// Nothing cached yet
	_, err := svc.GetCachedQuotes(ctx)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Zero(t, fetcher.calls)

	// However stale, the cached batch is served without a fetch
	require.NoError(t, cacheRepo.Save(ctx, batchAgedBy(48*time.Hour, 8500)))

	batch, err := svc.GetCachedQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8500.0, batch.Quotes[0].LastPrice)
	assert.Zero(t, fetcher.calls)
}
