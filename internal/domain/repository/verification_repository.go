package repository

import (
	"context"

	"localmarket/internal/domain/entity"
)

type VerificationRepository interface {
	// Create writes the request and, for listing-scoped requests, its
	// by-listing pointer in one batch.
	Create(ctx context.Context, req *entity.VerificationRequest) error
	GetByID(ctx context.Context, id string) (*entity.VerificationRequest, error)
	List(ctx context.Context) ([]*entity.VerificationRequest, error)
	ListByListing(ctx context.Context, listingID string) ([]*entity.VerificationRequest, error)
	Update(ctx context.Context, id string, fn func(*entity.VerificationRequest) error) (*entity.VerificationRequest, error)
}
