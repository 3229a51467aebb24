package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAt(t *testing.T) {
	p := &Position{Code: "BBCA", BuyPrice: 10000, StopLoss: 9000, TakeProfit: 13000}

	assert.Equal(t, StatusStopLoss, p.StatusAt(8500))
	assert.Equal(t, StatusStopLoss, p.StatusAt(9000)) // boundary is inclusive
	assert.Equal(t, StatusNormal, p.StatusAt(9001))
	assert.Equal(t, StatusNormal, p.StatusAt(12999))
	assert.Equal(t, StatusTakeProfit, p.StatusAt(13000))
	assert.Equal(t, StatusTakeProfit, p.StatusAt(15000))
}

func TestStatusAtUnsetBands(t *testing.T) {
	// Zero thresholds never trigger
	p := &Position{Code: "BBRI", BuyPrice: 4500}

	assert.Equal(t, StatusNormal, p.StatusAt(0))
	assert.Equal(t, StatusNormal, p.StatusAt(1))
	assert.Equal(t, StatusNormal, p.StatusAt(1000000))
}

func TestStatusAtStopLossWinsOverTakeProfit(t *testing.T) {
	// Misconfigured bands where both match: stop-loss takes precedence
	p := &Position{Code: "TLKM", StopLoss: 5000, TakeProfit: 3000}

	assert.Equal(t, StatusStopLoss, p.StatusAt(4000))
}

func TestSuggestBands(t *testing.T) {
	sl, tp := SuggestBands(10000)

	assert.InDelta(t, 9000, sl, 0.001)
	assert.InDelta(t, 13000, tp, 0.001)
}

func TestQuoteBatchFind(t *testing.T) {
	b := &QuoteBatch{Quotes: []QuoteRecord{
		{Code: "BBCA", LastPrice: 8500},
		{Code: "BBRI", LastPrice: 4500},
	}}

	q, ok := b.Find("BBRI")
	assert.True(t, ok)
	assert.Equal(t, 4500.0, q.LastPrice)

	_, ok = b.Find("bbri") // case-sensitive, no fuzzy matching
	assert.False(t, ok)

	_, ok = b.Find("XYZ1")
	assert.False(t, ok)
}
