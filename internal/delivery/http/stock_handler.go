package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"sahamwatch/internal/delivery/http/dto"
	"sahamwatch/internal/domain"
	"sahamwatch/internal/middleware"
	"sahamwatch/internal/service"
)

// StockHandler handles watchlist requests
type StockHandler struct {
	watchlist *service.WatchlistService
	log       zerolog.Logger
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(watchlist *service.WatchlistService, log zerolog.Logger) *StockHandler {
	return &StockHandler{
		watchlist: watchlist,
		log:       log.With().Str("component", "stock_handler").Logger(),
	}
}

// List returns the user's watchlist enriched with the latest quotes
// GET /api/stocks
func (h *StockHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	rows, err := h.watchlist.List(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list watchlist")
		return InternalServerErrorResponse(c, "Failed to load watchlist")
	}

	out := make([]dto.PositionOutput, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.NewPositionOutput(row))
	}
	return SuccessResponse(c, out)
}

// Add appends a ticker to the user's watchlist
// POST /api/stocks
func (h *StockHandler) Add(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.AddStockRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Code == "" {
		return BadRequestResponse(c, "Stock code is required")
	}
	if req.BuyPrice <= 0 {
		return BadRequestResponse(c, "Buy price must be greater than zero")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	added, err := h.watchlist.Add(ctx, userID, domain.Position{
		Code:       req.Code,
		BuyPrice:   req.BuyPrice,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateCode) {
			return ConflictResponse(c, "Stock already on watchlist")
		}
		h.log.Error().Err(err).Msg("Failed to add stock")
		return InternalServerErrorResponse(c, "Failed to add stock")
	}

	return CreatedResponse(c, dto.NewPositionOutput(domain.EnrichedPosition{
		Position: added,
		Status:   domain.StatusNormal,
	}))
}

// Remove deletes a ticker from the user's watchlist
// DELETE /api/stocks/:code
func (h *StockHandler) Remove(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	code := c.Param("code")
	if code == "" {
		return BadRequestResponse(c, "Stock code is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	removed, err := h.watchlist.Remove(ctx, userID, code)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to remove stock")
		return InternalServerErrorResponse(c, "Failed to remove stock")
	}
	if !removed {
		return NotFoundResponse(c, "Stock not on watchlist")
	}

	return SuccessMessageResponse(c, "Stock removed", nil)
}
