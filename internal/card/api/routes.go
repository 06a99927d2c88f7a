package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/noelukwa/devcard/internal/card"
	"github.com/noelukwa/devcard/internal/card/api/handlers"
)

// SetupRoutes mounts the card API for login on e.
func SetupRoutes(cardService *card.Service, login string, e *echo.Echo) *echo.Echo {

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: true,
	}))

	cardHandler := handlers.NewCardHandler(cardService, login)
	e.GET("/metrics", cardHandler.FetchMetrics)
	e.GET("/cards", cardHandler.FetchCards)
	e.GET("/cards/:theme", cardHandler.FetchCard)

	refreshHandler := handlers.NewRefreshHandler(cardService, login)
	e.POST("/refreshes", refreshHandler.CreateRefresh)
	e.GET("/refreshes/:id", refreshHandler.FetchRefresh)
	return e
}
