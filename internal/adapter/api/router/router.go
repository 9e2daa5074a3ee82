package router

import (
	"localmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// Setup registers every route. handler.Setup must have run first.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, signupLimit echo.MiddlewareFunc) {
	SetupAuthRouter(e, signupLimit)
	SetupUserRouter(e, authMiddleware)
	SetupSellerRouter(e, authMiddleware)
	SetupListingRouter(e, authMiddleware)
	SetupOrderRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupReportRouter(e, authMiddleware)
	SetupVerificationRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware)
	SetupCategoryRouter(e)
	SetupUploadRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
