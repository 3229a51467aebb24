package domain

import "time"

// QuoteRecord is one ticker's latest market snapshot, normalized from the
// upstream feed. Immutable once fetched.
type QuoteRecord struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	LastPrice     float64 `json:"last_price"`
	PreviousClose float64 `json:"previous_close"`
}

// QuoteBatch is one atomic snapshot of all tickers' latest prices.
// A batch is always replaced wholesale, never merged record-by-record.
type QuoteBatch struct {
	FetchedAt time.Time     `json:"fetched_at"`
	Quotes    []QuoteRecord `json:"quotes"`
}

// Find returns the record matching code, exact case-sensitive match.
// The second return is false when the code is not in the batch.
func (b *QuoteBatch) Find(code string) (QuoteRecord, bool) {
	for _, q := range b.Quotes {
		if q.Code == code {
			return q, true
		}
	}
	return QuoteRecord{}, false
}

// Age returns how old the batch is relative to now
func (b *QuoteBatch) Age(now time.Time) time.Duration {
	return now.Sub(b.FetchedAt)
}
