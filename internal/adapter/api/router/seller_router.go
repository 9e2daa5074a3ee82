package router

import (
	"localmarket/internal/adapter/api/handler"
	"localmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupSellerRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	sellerHandler := handler.GetSellerHandler()
	listingHandler := handler.GetListingHandler()
	orderHandler := handler.GetOrderHandler()

	seller := e.Group("/seller")
	seller.Use(authMiddleware.Authenticate)

	seller.GET("/profile", sellerHandler.GetProfile)
	seller.PUT("/profile", sellerHandler.UpdateProfile)
	seller.GET("/listings", listingHandler.GetMyListings)
	seller.GET("/orders", orderHandler.GetSellerOrders)
}
