package domain

import "context"

// QuoteFetcher fetches a fresh quote batch from the external market data feed.
// Implementations must not retry internally; retry policy belongs to the caller.
type QuoteFetcher interface {
	Fetch(ctx context.Context) (*QuoteBatch, error)
}

// QuoteProvider supplies the latest quote batch, serving from cache when fresh
type QuoteProvider interface {
	// GetQuotes returns a fresh-enough batch, refetching when the cache is
	// stale and falling back to the stale cache when the fetch fails.
	GetQuotes(ctx context.Context) (*QuoteBatch, error)

	// GetCachedQuotes returns whatever batch is persisted without fetching,
	// or ErrUpstream when nothing has ever been cached.
	GetCachedQuotes(ctx context.Context) (*QuoteBatch, error)
}
