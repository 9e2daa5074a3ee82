package router

import (
	"localmarket/internal/adapter/api/handler"
	"localmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := e.Group("/reviews")
	reviews.GET("/seller/:id", reviewHandler.GetSellerReviews)
	reviews.POST("", reviewHandler.CreateReview, authMiddleware.Authenticate)
}
