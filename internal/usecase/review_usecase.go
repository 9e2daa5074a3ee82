package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/policy"
	"localmarket/internal/domain/repository"
	"localmarket/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
	userRepo   repository.UserRepository
	publisher  EventPublisher
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	publisher EventPublisher,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

type CreateReviewInput struct {
	OrderID string
	Rating  int
	Text    string
}

type ReviewView struct {
	*entity.Review
	Reviewer *entity.User `json:"reviewer"`
}

// Create stores a review of the order's seller and recomputes the seller's
// rating from every review indexed under them. Out of range ratings are
// clamped rather than rejected.
func (uc *ReviewUseCase) Create(ctx context.Context, actor policy.Actor, input CreateReviewInput) (*entity.Review, error) {
	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ReviewOrder, order); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ID:         uuid.New().String(),
		OrderID:    order.ID,
		ReviewerID: actor.UserID,
		RevieweeID: order.SellerID,
		Rating:     entity.ClampRating(input.Rating),
		Text:       input.Text,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// The review is committed at this point; a failed refresh is picked up
	// by the next review for the same seller.
	rating, err := uc.reviewRepo.RefreshSellerRating(ctx, order.SellerID)
	if err != nil {
		logger.Warn("Failed to refresh rating for seller %s: %v", order.SellerID, err)
	}

	publish(ctx, uc.publisher, entity.EventReviewCreated, review.ID, actor.UserID, map[string]any{
		"order_id":      review.OrderID,
		"reviewee_id":   review.RevieweeID,
		"rating":        review.Rating,
		"seller_rating": rating,
	})
	return review, nil
}

func (uc *ReviewUseCase) ListForSeller(ctx context.Context, sellerID string) ([]*ReviewView, error) {
	reviews, err := uc.reviewRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	sortByNewest(reviews, func(r *entity.Review) time.Time { return r.CreatedAt })

	reviewerIDs := make([]string, len(reviews))
	for i, r := range reviews {
		reviewerIDs[i] = r.ReviewerID
	}
	reviewers, err := uc.userRepo.GetByIDs(ctx, reviewerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*ReviewView, len(reviews))
	for i, r := range reviews {
		views[i] = &ReviewView{Review: r, Reviewer: reviewers[r.ReviewerID]}
	}
	return views, nil
}
