package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sahamwatch/internal/domain"
	"sahamwatch/internal/repository"
	"sahamwatch/internal/storage"
)

// fakeQuoteProvider serves a fixed batch or error
type fakeQuoteProvider struct {
	batch *domain.QuoteBatch
	err   error
}

func (f *fakeQuoteProvider) GetQuotes(ctx context.Context) (*domain.QuoteBatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func (f *fakeQuoteProvider) GetCachedQuotes(ctx context.Context) (*domain.QuoteBatch, error) {
	return f.GetQuotes(ctx)
}

func setupWatchlistService(t *testing.T, quotes domain.QuoteProvider) (*WatchlistService, domain.WatchlistRepository) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := repository.NewWatchlistRepository(store)
	return NewWatchlistService(repo, quotes, zerolog.Nop()), repo
}

func TestEnrichMatch(t *testing.T) {
	positions := []domain.Position{
		{Code: "BBCA", BuyPrice: 10000, StopLoss: 9000, TakeProfit: 13000},
	}
	batch := &domain.QuoteBatch{Quotes: []domain.QuoteRecord{
		{Code: "BBCA", Name: "Bank Central Asia Tbk", LastPrice: 8500, PreviousClose: 9200},
	}}

	rows := Enrich(positions, batch)
	require.Len(t, rows, 1)
	assert.Equal(t, 8500.0, rows[0].CurrentPrice)
	assert.Equal(t, -700.0, rows[0].Change)
	assert.InDelta(t, -700.0/9200*100, rows[0].ChangePercent, 0.0001)
	assert.Equal(t, domain.StatusStopLoss, rows[0].Status)
	assert.Equal(t, "Bank Central Asia Tbk", rows[0].Name)
}

func TestEnrichNoMatchKeepsLastKnownPrice(t *testing.T) {
	positions := []domain.Position{
		{Code: "XYZ1", BuyPrice: 500, TakeProfit: 900, CurrentPrice: 950},
		{Code: "NEW1", BuyPrice: 100}, // never enriched
	}
	batch := &domain.QuoteBatch{Quotes: []domain.QuoteRecord{
		{Code: "BBCA", LastPrice: 8500, PreviousClose: 9200},
	}}

	rows := Enrich(positions, batch)
	require.Len(t, rows, 2)

	// Status is computed from the unchanged price
	assert.Equal(t, 950.0, rows[0].CurrentPrice)
	assert.Equal(t, 0.0, rows[0].Change)
	assert.Equal(t, 0.0, rows[0].ChangePercent)
	assert.Equal(t, domain.StatusTakeProfit, rows[0].Status)

	assert.Equal(t, 0.0, rows[1].CurrentPrice)
	assert.Equal(t, domain.StatusNormal, rows[1].Status)
}

func TestEnrichZeroPreviousCloseGuard(t *testing.T) {
	positions := []domain.Position{{Code: "IPO1", BuyPrice: 100}}
	batch := &domain.QuoteBatch{Quotes: []domain.QuoteRecord{
		{Code: "IPO1", LastPrice: 120, PreviousClose: 0},
	}}

	rows := Enrich(positions, batch)
	assert.Equal(t, 120.0, rows[0].CurrentPrice)
	assert.Equal(t, 120.0, rows[0].Change)
	assert.Equal(t, 0.0, rows[0].ChangePercent)
}

func TestEnrichPreservesInputOrder(t *testing.T) {
	positions := []domain.Position{
		{Code: "TLKM"}, {Code: "BBCA"}, {Code: "ASII"},
	}
	batch := &domain.QuoteBatch{Quotes: []domain.QuoteRecord{
		{Code: "ASII", LastPrice: 5000},
		{Code: "BBCA", LastPrice: 8500},
		{Code: "TLKM", LastPrice: 3800},
	}}

	rows := Enrich(positions, batch)
	require.Len(t, rows, 3)
	assert.Equal(t, "TLKM", rows[0].Code)
	assert.Equal(t, "BBCA", rows[1].Code)
	assert.Equal(t, "ASII", rows[2].Code)
}

func TestEnrichNilBatch(t *testing.T) {
	positions := []domain.Position{{Code: "BBCA", StopLoss: 9000, CurrentPrice: 8500}}

	rows := Enrich(positions, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 8500.0, rows[0].CurrentPrice)
	assert.Equal(t, domain.StatusStopLoss, rows[0].Status)
}

func TestListPersistsLastKnownPrices(t *testing.T) {
	quotes := &fakeQuoteProvider{batch: &domain.QuoteBatch{Quotes: []domain.QuoteRecord{
		{Code: "BBCA", LastPrice: 8500, PreviousClose: 9200},
	}}}
	svc, repo := setupWatchlistService(t, quotes)
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, domain.Position{Code: "BBCA", BuyPrice: 10000})
	require.NoError(t, err)

	rows, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 8500.0, rows[0].CurrentPrice)

	// The matched price survives an outage of the feed
	quotes.batch = nil
	quotes.err = domain.ErrUpstream

	positions, err := repo.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 8500.0, positions[0].CurrentPrice)

	rows, err = svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 8500.0, rows[0].CurrentPrice)
	assert.Equal(t, domain.StatusStopLoss, rows[0].Status)
}

func TestListDegradesWhenQuotesUnavailable(t *testing.T) {
	svc, _ := setupWatchlistService(t, &fakeQuoteProvider{err: domain.ErrUpstream})
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, domain.Position{Code: "BBCA", BuyPrice: 10000})
	require.NoError(t, err)

	rows, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].CurrentPrice)
}

func TestAddNormalizesAndAppliesDefaultBands(t *testing.T) {
	svc, _ := setupWatchlistService(t, &fakeQuoteProvider{})
	userID := uuid.New()

	added, err := svc.Add(context.Background(), userID, domain.Position{Code: " bbca ", BuyPrice: 10000})
	require.NoError(t, err)

	assert.Equal(t, "BBCA", added.Code)
	assert.InDelta(t, 9000, added.StopLoss, 0.001)
	assert.InDelta(t, 13000, added.TakeProfit, 0.001)
	assert.WithinDuration(t, time.Now(), added.CreatedAt, 5*time.Second)
}

func TestAddKeepsExplicitBands(t *testing.T) {
	svc, _ := setupWatchlistService(t, &fakeQuoteProvider{})
	userID := uuid.New()

	added, err := svc.Add(context.Background(), userID, domain.Position{
		Code: "BBCA", BuyPrice: 10000, StopLoss: 9500, TakeProfit: 11000,
	})
	require.NoError(t, err)
	assert.Equal(t, 9500.0, added.StopLoss)
	assert.Equal(t, 11000.0, added.TakeProfit)
}

func TestAddDuplicate(t *testing.T) {
	svc, _ := setupWatchlistService(t, &fakeQuoteProvider{})
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, domain.Position{Code: "BBCA", BuyPrice: 10000})
	require.NoError(t, err)

	// Normalization makes the lowercase duplicate collide too
	_, err = svc.Add(ctx, userID, domain.Position{Code: "bbca", BuyPrice: 9000})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestRemove(t *testing.T) {
	svc, _ := setupWatchlistService(t, &fakeQuoteProvider{})
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, domain.Position{Code: "BBCA", BuyPrice: 10000})
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, userID, "bbca")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Remove(ctx, userID, "NOPE")
	require.NoError(t, err)
	assert.False(t, removed)
}
