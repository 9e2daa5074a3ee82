package repository

import (
	"context"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/repository"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

type kvOrderRepository struct {
	store kvstore.Store
}

func NewKVOrderRepository(store kvstore.Store) repository.OrderRepository {
	return &kvOrderRepository{
		store: store,
	}
}

// Place guards on the listing key, so two buyers racing for the last unit
// cannot both succeed: the loser's fn reruns against the decremented
// listing and fails its stock check.
func (r *kvOrderRepository) Place(ctx context.Context, listingID string, fn repository.PlaceFunc) (*entity.Order, *entity.Listing, error) {
	key := kvstore.ListingKey(listingID)

	var (
		order   *entity.Order
		listing *entity.Listing
	)
	err := r.store.Update(ctx, key, func(current []byte, found bool) ([]kvstore.Mutation, error) {
		if !found {
			return nil, errors.NotFound("Listing", nil)
		}
		l, err := kvstore.Decode[entity.Listing](key, current)
		if err != nil {
			return nil, err
		}
		o, err := fn(l)
		if err != nil {
			return nil, err
		}
		order, listing = o, l
		return []kvstore.Mutation{
			kvstore.Put(kvstore.OrderKey(o.ID), o),
			kvstore.Put(kvstore.OrderByBuyerKey(o.BuyerID, o.ID), o.ID),
			kvstore.Put(kvstore.OrderBySellerKey(o.SellerID, o.ID), o.ID),
			kvstore.Put(key, l),
		}, nil
	})
	if err != nil {
		return nil, nil, storeError(err, "Failed to create order")
	}
	return order, listing, nil
}

func (r *kvOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return getRecord[entity.Order](ctx, r.store, kvstore.OrderKey(id), "Order")
}

func (r *kvOrderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	orders, err := kvstore.ScanPrimary[entity.Order](ctx, r.store, kvstore.PrefixOrders)
	if err != nil {
		return nil, errors.Internal("Failed to list orders", err)
	}
	return orders, nil
}

func (r *kvOrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	orders, err := kvstore.ResolveIndex[entity.Order](ctx, r.store, kvstore.OrderByBuyerPrefix(buyerID), kvstore.OrderKey)
	if err != nil {
		return nil, errors.Internal("Failed to list buyer orders", err)
	}
	return orders, nil
}

func (r *kvOrderRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	orders, err := kvstore.ResolveIndex[entity.Order](ctx, r.store, kvstore.OrderBySellerPrefix(sellerID), kvstore.OrderKey)
	if err != nil {
		return nil, errors.Internal("Failed to list seller orders", err)
	}
	return orders, nil
}

func (r *kvOrderRepository) Update(ctx context.Context, id string, fn func(*entity.Order) error) (*entity.Order, error) {
	return updateRecord(ctx, r.store, kvstore.OrderKey(id), "Order", fn)
}
