package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"sahamwatch/internal/delivery/http/dto"
	"sahamwatch/internal/domain"
)

// QuoteHandler handles market data requests
type QuoteHandler struct {
	quotes domain.QuoteProvider
	log    zerolog.Logger
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quotes domain.QuoteProvider, log zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
		log:    log.With().Str("component", "quote_handler").Logger(),
	}
}

// Get returns the latest quote batch. With ?cached=true only the persisted
// batch is served, never triggering an upstream fetch.
// GET /api/quotes
func (h *QuoteHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	var (
		batch *domain.QuoteBatch
		err   error
	)
	if c.QueryParam("cached") == "true" {
		batch, err = h.quotes.GetCachedQuotes(ctx)
	} else {
		batch, err = h.quotes.GetQuotes(ctx)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			return BadGatewayResponse(c, "Market data is currently unavailable")
		}
		h.log.Error().Err(err).Msg("Failed to get quotes")
		return InternalServerErrorResponse(c, "Failed to get quotes")
	}

	return SuccessResponse(c, dto.NewQuoteBatchOutput(batch))
}
