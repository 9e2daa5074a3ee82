package repository

import (
	"context"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/repository"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

type kvReviewRepository struct {
	store kvstore.Store
}

func NewKVReviewRepository(store kvstore.Store) repository.ReviewRepository {
	return &kvReviewRepository{
		store: store,
	}
}

func (r *kvReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	err := r.store.Apply(ctx,
		kvstore.Put(kvstore.ReviewKey(review.ID), review),
		kvstore.Put(kvstore.ReviewBySellerKey(review.RevieweeID, review.ID), review.ID),
	)
	if err != nil {
		return errors.Internal("Failed to create review", err)
	}
	return nil
}

func (r *kvReviewRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Review, error) {
	reviews, err := kvstore.ResolveIndex[entity.Review](ctx, r.store, kvstore.ReviewBySellerPrefix(sellerID), kvstore.ReviewKey)
	if err != nil {
		return nil, errors.Internal("Failed to list reviews", err)
	}
	return reviews, nil
}

// RefreshSellerRating scans the review index inside the guard on the user
// record. A review committed by a concurrent request either shows up in the
// scan or forces a retry when that request refreshes the same user.
func (r *kvReviewRepository) RefreshSellerRating(ctx context.Context, sellerID string) (float64, error) {
	key := kvstore.UserKey(sellerID)

	var rating float64
	err := r.store.Update(ctx, key, func(current []byte, found bool) ([]kvstore.Mutation, error) {
		if !found {
			return nil, errors.NotFound("User", nil)
		}
		user, err := kvstore.Decode[entity.User](key, current)
		if err != nil {
			return nil, err
		}
		reviews, err := kvstore.ResolveIndex[entity.Review](ctx, r.store, kvstore.ReviewBySellerPrefix(sellerID), kvstore.ReviewKey)
		if err != nil {
			return nil, err
		}
		user.Rating = entity.MeanRating(reviews)
		rating = user.Rating
		return []kvstore.Mutation{kvstore.Put(key, user)}, nil
	})
	if err != nil {
		return 0, storeError(err, "Failed to update seller rating")
	}
	return rating, nil
}
