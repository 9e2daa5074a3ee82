package router

import (
	"localmarket/internal/adapter/api/handler"
	"localmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// Seller orders live under /seller with the rest of the seller dashboard.
func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.POST("", orderHandler.CreateOrder)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)

	e.GET("/buyer/orders", orderHandler.GetBuyerOrders, authMiddleware.Authenticate)
}
