package dto

import (
	"time"

	"sahamwatch/internal/domain"
	"sahamwatch/internal/utils"
)

// AddStockRequest represents the add-to-watchlist payload.
// StopLoss and TakeProfit are optional; omitted or zero values are filled
// with the suggested -10% / +30% bands.
type AddStockRequest struct {
	Code       string  `json:"code" validate:"required"`
	BuyPrice   float64 `json:"buy_price" validate:"required,gt=0"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
}

// PositionOutput represents one enriched watchlist row in API responses
type PositionOutput struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector,omitempty"`
	BuyPrice      float64 `json:"buy_price"`
	CurrentPrice  float64 `json:"current_price"`
	StopLoss      float64 `json:"stop_loss"`
	TakeProfit    float64 `json:"take_profit"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

// NewPositionOutput maps an enriched position onto the API shape
func NewPositionOutput(p domain.EnrichedPosition) PositionOutput {
	name := p.Name
	if name == "" {
		name = p.Code
	}
	return PositionOutput{
		Code:          p.Code,
		Name:          name,
		Sector:        p.Sector,
		BuyPrice:      p.BuyPrice,
		CurrentPrice:  p.CurrentPrice,
		StopLoss:      p.StopLoss,
		TakeProfit:    p.TakeProfit,
		Change:        p.Change,
		ChangePercent: p.ChangePercent,
		Status:        p.Status,
		CreatedAt:     utils.InJakarta(p.CreatedAt).Format(time.RFC3339),
	}
}

// QuoteOutput represents one quote record in API responses
type QuoteOutput struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector,omitempty"`
	LastPrice     float64 `json:"last_price"`
	PreviousClose float64 `json:"previous_close"`
}

// QuoteBatchOutput represents the quote batch in API responses.
// FetchedAt is rendered in WIB, the IDX trading timezone.
type QuoteBatchOutput struct {
	FetchedAt string        `json:"fetched_at"`
	Quotes    []QuoteOutput `json:"quotes"`
}

// NewQuoteBatchOutput maps a quote batch onto the API shape
func NewQuoteBatchOutput(b *domain.QuoteBatch) QuoteBatchOutput {
	quotes := make([]QuoteOutput, 0, len(b.Quotes))
	for _, q := range b.Quotes {
		quotes = append(quotes, QuoteOutput{
			Code:          q.Code,
			Name:          q.Name,
			Sector:        q.Sector,
			LastPrice:     q.LastPrice,
			PreviousClose: q.PreviousClose,
		})
	}
	return QuoteBatchOutput{
		FetchedAt: utils.InJakarta(b.FetchedAt).Format(time.RFC3339),
		Quotes:    quotes,
	}
}
