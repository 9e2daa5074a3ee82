package handler

import (
	"localmarket/internal/usecase"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	sellerHandler       *SellerHandler
	listingHandler      *ListingHandler
	orderHandler        *OrderHandler
	reviewHandler       *ReviewHandler
	reportHandler       *ReportHandler
	verificationHandler *VerificationHandler
	adminHandler        *AdminHandler
	categoryHandler     *CategoryHandler
	uploadHandler       *UploadHandler
	healthHandler       *HealthHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	sellerUseCase *usecase.SellerUseCase,
	listingUseCase *usecase.ListingUseCase,
	orderUseCase *usecase.OrderUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	reportUseCase *usecase.ReportUseCase,
	verificationUseCase *usecase.VerificationUseCase,
	analyticsUseCase *usecase.AnalyticsUseCase,
	uploadUseCase *usecase.UploadUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	sellerHandler = NewSellerHandler(sellerUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	reportHandler = NewReportHandler(reportUseCase)
	verificationHandler = NewVerificationHandler(verificationUseCase)
	adminHandler = NewAdminHandler(analyticsUseCase)
	categoryHandler = NewCategoryHandler()
	uploadHandler = NewUploadHandler(uploadUseCase)
	healthHandler = NewHealthHandler()
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetSellerHandler() *SellerHandler {
	return sellerHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetReportHandler() *ReportHandler {
	return reportHandler
}

func GetVerificationHandler() *VerificationHandler {
	return verificationHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetCategoryHandler() *CategoryHandler {
	return categoryHandler
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
