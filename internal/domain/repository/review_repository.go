package repository

import (
	"context"

	"localmarket/internal/domain/entity"
)

type ReviewRepository interface {
	// Create writes the review and its by-seller pointer in one batch.
	Create(ctx context.Context, review *entity.Review) error
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Review, error)
	// RefreshSellerRating recomputes the mean rating over every review
	// indexed under the seller and stores it on the seller's user record.
	RefreshSellerRating(ctx context.Context, sellerID string) (float64, error)
}
