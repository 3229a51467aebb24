package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"sahamwatch/internal/utils"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler  *AuthHandler
	StockHandler *StockHandler
	QuoteHandler *QuoteHandler
	AuthMW       echo.MiddlewareFunc
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for the health probe to reduce noise
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":    "healthy",
			"service":   "sahamwatch-api",
			"timestamp": utils.GetJakartaTime().Format(time.RFC3339),
		})
	})

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
	}

	// Auth routes requiring a live session
	authed := api.Group("/auth", config.AuthMW)
	{
		authed.POST("/logout", config.AuthHandler.Logout)
		authed.GET("/me", config.AuthHandler.Me)
	}

	// Watchlist routes (protected)
	stocks := api.Group("/stocks", config.AuthMW)
	{
		stocks.GET("", config.StockHandler.List)
		stocks.POST("", config.StockHandler.Add)
		stocks.DELETE("/:code", config.StockHandler.Remove)
	}

	// Market data routes (protected)
	quotes := api.Group("/quotes", config.AuthMW)
	{
		quotes.GET("", config.QuoteHandler.Get)
	}
}
