package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sahamwatch/internal/domain"
)

// WatchlistService manages per-user watchlists and merges them with the
// latest quote batch on reads.
type WatchlistService struct {
	watchlistRepo domain.WatchlistRepository
	quotes        domain.QuoteProvider
	log           zerolog.Logger
}

// NewWatchlistService creates a new WatchlistService
func NewWatchlistService(
	watchlistRepo domain.WatchlistRepository,
	quotes domain.QuoteProvider,
	log zerolog.Logger,
) *WatchlistService {
	return &WatchlistService{
		watchlistRepo: watchlistRepo,
		quotes:        quotes,
		log:           log.With().Str("component", "watchlist").Logger(),
	}
}

// List returns the user's positions enriched with the latest quotes.
// A dead market feed degrades the enrichment to last-known prices instead
// of failing the read; the watchlist itself is always served.
func (s *WatchlistService) List(ctx context.Context, userID uuid.UUID) ([]domain.EnrichedPosition, error) {
	positions, err := s.watchlistRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	batch, err := s.quotes.GetQuotes(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Quotes unavailable, serving last-known prices")
		batch = nil
	}

	enriched := Enrich(positions, batch)

	// Persist refreshed last-known prices so a later no-match enrichment
	// can fall back on them. Best effort: a failed write only logs.
	updated := make(map[string]float64)
	for i, row := range enriched {
		if row.CurrentPrice != positions[i].CurrentPrice {
			updated[row.Code] = row.CurrentPrice
		}
	}
	if len(updated) > 0 {
		if err := s.watchlistRepo.UpdateCurrentPrices(ctx, userID, updated); err != nil {
			s.log.Error().Err(err).Msg("Failed to persist last-known prices")
		}
	}

	return enriched, nil
}

// Add validates and appends a position to the user's watchlist.
// Ticker codes are uppercased; quote matching is exact from then on.
func (s *WatchlistService) Add(ctx context.Context, userID uuid.UUID, position domain.Position) (domain.Position, error) {
	position.Code = strings.ToUpper(strings.TrimSpace(position.Code))
	position.CreatedAt = time.Now()

	// UI-level defaults: fill the bands the user left empty
	suggestedSL, suggestedTP := domain.SuggestBands(position.BuyPrice)
	if position.StopLoss <= 0 {
		position.StopLoss = suggestedSL
	}
	if position.TakeProfit <= 0 {
		position.TakeProfit = suggestedTP
	}

	if err := s.watchlistRepo.Add(ctx, userID, position); err != nil {
		return domain.Position{}, err
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("code", position.Code).
		Float64("buy_price", position.BuyPrice).
		Msg("Position added")
	return position, nil
}

// Remove deletes the position with the given code, reporting whether it existed
func (s *WatchlistService) Remove(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	removed, err := s.watchlistRepo.Remove(ctx, userID, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return false, err
	}
	if removed {
		s.log.Info().
			Str("user_id", userID.String()).
			Str("code", code).
			Msg("Position removed")
	}
	return removed, nil
}

// Enrich merges positions with a quote batch. Input order is preserved.
// A position whose code is not in the batch keeps its last known price with
// zero change; a missing quote is expected for newly listed or delisted
// tickers, not an error. A nil batch enriches everything that way.
func Enrich(positions []domain.Position, batch *domain.QuoteBatch) []domain.EnrichedPosition {
	enriched := make([]domain.EnrichedPosition, 0, len(positions))

	for _, pos := range positions {
		row := domain.EnrichedPosition{Position: pos}

		if batch != nil {
			if quote, ok := batch.Find(pos.Code); ok {
				row.CurrentPrice = quote.LastPrice
				row.Name = quote.Name
				row.Sector = quote.Sector
				row.Change = quote.LastPrice - quote.PreviousClose
				if quote.PreviousClose != 0 {
					row.ChangePercent = row.Change / quote.PreviousClose * 100
				}
			}
		}

		row.Status = pos.StatusAt(row.CurrentPrice)
		enriched = append(enriched, row)
	}
	return enriched
}
