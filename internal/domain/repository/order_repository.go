package repository

import (
	"context"

	"localmarket/internal/domain/entity"
)

// PlaceFunc is handed the current listing and returns the order to place.
// It mutates the listing in place to reserve stock. It may run more than
// once when the listing changes concurrently.
type PlaceFunc func(listing *entity.Listing) (*entity.Order, error)

type OrderRepository interface {
	// Place writes the order, both pointer records and the reserved
	// listing atomically, guarded on the listing.
	Place(ctx context.Context, listingID string, fn PlaceFunc) (*entity.Order, *entity.Listing, error)
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error)
	Update(ctx context.Context, id string, fn func(*entity.Order) error) (*entity.Order, error)
}
