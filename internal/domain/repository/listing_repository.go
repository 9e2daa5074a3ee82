package repository

import (
	"context"

	"localmarket/internal/domain/entity"
)

type ListingRepository interface {
	// Create writes the listing, its by-seller pointer and its images in
	// one batch.
	Create(ctx context.Context, listing *entity.Listing, images []*entity.ListingImage) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Listing, error)
	List(ctx context.Context) ([]*entity.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error)
	Images(ctx context.Context, listingID string) ([]*entity.ListingImage, error)
	Update(ctx context.Context, id string, fn func(*entity.Listing) error) (*entity.Listing, error)
	// Delete removes the listing, its by-seller pointer and its images in
	// one batch. Orders and reviews that reference it are left alone.
	Delete(ctx context.Context, listing *entity.Listing) error
}
