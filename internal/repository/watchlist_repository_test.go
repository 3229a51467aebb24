package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sahamwatch/internal/domain"
	"sahamwatch/internal/storage"
)

func setupStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestWatchlistListEmpty(t *testing.T) {
	repo := NewWatchlistRepository(setupStore(t))

	positions, err := repo.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestWatchlistAddAndList(t *testing.T) {
	repo := NewWatchlistRepository(setupStore(t))
	userID := uuid.New()
	ctx := context.Background()

	err := repo.Add(ctx, userID, domain.Position{
		Code: "BBCA", BuyPrice: 10000, StopLoss: 9000, TakeProfit: 13000, CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	err = repo.Add(ctx, userID, domain.Position{Code: "TLKM", BuyPrice: 3800})
	require.NoError(t, err)

	positions, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	// Input order preserved
	assert.Equal(t, "BBCA", positions[0].Code)
	assert.Equal(t, "TLKM", positions[1].Code)
}

func TestWatchlistDuplicateAddRejected(t *testing.T) {
	repo := NewWatchlistRepository(setupStore(t))
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, userID, domain.Position{Code: "BBCA", BuyPrice: 10000}))

	err := repo.Add(ctx, userID, domain.Position{Code: "BBCA", BuyPrice: 9500})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	positions, err := repo.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, positions, 1)
	assert.Equal(t, 10000.0, positions[0].BuyPrice)
}

func TestWatchlistRemove(t *testing.T) {
	repo := NewWatchlistRepository(setupStore(t))
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, userID, domain.Position{Code: "BBCA", BuyPrice: 10000}))

	removed, err := repo.Remove(ctx, userID, "BBCA")
	require.NoError(t, err)
	assert.True(t, removed)

	positions, err := repo.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestWatchlistRemoveMissingIsIdempotent(t *testing.T) {
	repo := NewWatchlistRepository(setupStore(t))
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, userID, domain.Position{Code: "BBCA", BuyPrice: 10000}))

	removed, err := repo.Remove(ctx, userID, "NOPE")
	require.NoError(t, err)
	assert.False(t, removed)

	positions, err := repo.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, positions, 1)
}

func TestWatchlistIsPartitionedByUser(t *testing.T) {
	repo := NewWatchlistRepository(setupStore(t))
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, repo.Add(ctx, alice, domain.Position{Code: "BBCA", BuyPrice: 10000}))
	// Same code for a different user is not a duplicate
	require.NoError(t, repo.Add(ctx, bob, domain.Position{Code: "BBCA", BuyPrice: 8000}))

	positions, err := repo.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, 8000.0, positions[0].BuyPrice)
}

func TestWatchlistUpdateCurrentPrices(t *testing.T) {
	repo := NewWatchlistRepository(setupStore(t))
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, userID, domain.Position{Code: "BBCA", BuyPrice: 10000}))
	require.NoError(t, repo.Add(ctx, userID, domain.Position{Code: "TLKM", BuyPrice: 3800}))

	err := repo.UpdateCurrentPrices(ctx, userID, map[string]float64{
		"BBCA": 10250,
		"XYZ1": 42, // not on the list, ignored
	})
	require.NoError(t, err)

	positions, err := repo.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 10250.0, positions[0].CurrentPrice)
	assert.Equal(t, 0.0, positions[1].CurrentPrice)
}
