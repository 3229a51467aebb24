package domain

import (
	"time"
)

// Position represents one watchlist entry: a user's stake in a single ticker.
// BuyPrice is fixed at creation; the only mutations are remove and the
// last-known price refresh applied after enrichment.
type Position struct {
	Code         string    `json:"code"`
	BuyPrice     float64   `json:"buy_price"`
	StopLoss     float64   `json:"stop_loss"`
	TakeProfit   float64   `json:"take_profit"`
	CurrentPrice float64   `json:"current_price"` // last known enriched price, 0 if never enriched
	CreatedAt    time.Time `json:"created_at"`
}

// EnrichedPosition is a Position merged with the latest quote batch.
// Derived on every read, never persisted.
type EnrichedPosition struct {
	Position
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Status        string  `json:"status"`
}

// Position status constants
const (
	StatusStopLoss   = "STOP_LOSS"
	StatusTakeProfit = "TAKE_PROFIT"
	StatusNormal     = "NORMAL"
)

// Default stop-loss / take-profit bands relative to buy price.
// These are suggestions applied when the user leaves the fields empty,
// not enforced bounds.
const (
	DefaultStopLossRatio   = 0.9 // -10%
	DefaultTakeProfitRatio = 1.3 // +30%
)

// SuggestBands derives default stop-loss and take-profit levels from a buy price
func SuggestBands(buyPrice float64) (stopLoss, takeProfit float64) {
	return buyPrice * DefaultStopLossRatio, buyPrice * DefaultTakeProfitRatio
}

// StatusAt classifies the position against a price. Stop-loss wins over
// take-profit; a zero threshold means the band is unset and never triggers.
func (p *Position) StatusAt(price float64) string {
	if p.StopLoss > 0 && price <= p.StopLoss {
		return StatusStopLoss
	}
	if p.TakeProfit > 0 && price >= p.TakeProfit {
		return StatusTakeProfit
	}
	return StatusNormal
}
