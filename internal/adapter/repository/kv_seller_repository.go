package repository

import (
	"context"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/repository"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

type kvSellerRepository struct {
	store kvstore.Store
}

func NewKVSellerRepository(store kvstore.Store) repository.SellerRepository {
	return &kvSellerRepository{
		store: store,
	}
}

func (r *kvSellerRepository) GetByUserID(ctx context.Context, userID string) (*entity.SellerProfile, error) {
	return getRecord[entity.SellerProfile](ctx, r.store, kvstore.SellerKey(userID), "Seller profile")
}

func (r *kvSellerRepository) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*entity.SellerProfile, error) {
	found, err := kvstore.GetManyJSON[entity.SellerProfile](ctx, r.store, keysFor(userIDs, kvstore.SellerKey))
	if err != nil {
		return nil, errors.Internal("Failed to get seller profiles", err)
	}
	return byID(found, kvstore.PrefixSellers), nil
}

func (r *kvSellerRepository) Upsert(ctx context.Context, userID string, fn func(*entity.SellerProfile) error) (*entity.SellerProfile, error) {
	key := kvstore.SellerKey(userID)

	var saved *entity.SellerProfile
	err := r.store.Update(ctx, key, func(current []byte, found bool) ([]kvstore.Mutation, error) {
		profile := entity.NewSellerProfile(userID, "")
		if found {
			var err error
			if profile, err = kvstore.Decode[entity.SellerProfile](key, current); err != nil {
				return nil, err
			}
		}
		if err := fn(profile); err != nil {
			return nil, err
		}
		profile.UserID = userID
		saved = profile
		return []kvstore.Mutation{kvstore.Put(key, profile)}, nil
	})
	if err != nil {
		return nil, storeError(err, "Failed to save seller profile")
	}
	return saved, nil
}

func (r *kvSellerRepository) Update(ctx context.Context, userID string, fn func(*entity.SellerProfile) error) (*entity.SellerProfile, error) {
	return updateRecord(ctx, r.store, kvstore.SellerKey(userID), "Seller profile", fn)
}
