package router

import (
	"localmarket/internal/adapter/api/handler"
	"localmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/listings")

	// Public routes
	listings.GET("", listingHandler.Search, authMiddleware.OptionalAuth)
	listings.GET("/:id", listingHandler.GetListing, authMiddleware.OptionalAuth)

	// Owner routes
	listings.POST("", listingHandler.CreateListing, authMiddleware.Authenticate)
	listings.PUT("/:id", listingHandler.UpdateListing, authMiddleware.Authenticate)
	listings.DELETE("/:id", listingHandler.DeleteListing, authMiddleware.Authenticate)
}
