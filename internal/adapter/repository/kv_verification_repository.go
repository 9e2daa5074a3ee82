package repository

import (
	"context"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/repository"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

type kvVerificationRepository struct {
	store kvstore.Store
}

func NewKVVerificationRepository(store kvstore.Store) repository.VerificationRepository {
	return &kvVerificationRepository{
		store: store,
	}
}

func (r *kvVerificationRepository) Create(ctx context.Context, req *entity.VerificationRequest) error {
	mutations := []kvstore.Mutation{kvstore.Put(kvstore.VerificationKey(req.ID), req)}
	if req.ListingID != "" {
		mutations = append(mutations, kvstore.Put(kvstore.VerificationByListingKey(req.ListingID, req.ID), req.ID))
	}

	if err := r.store.Apply(ctx, mutations...); err != nil {
		return errors.Internal("Failed to create verification request", err)
	}
	return nil
}

func (r *kvVerificationRepository) GetByID(ctx context.Context, id string) (*entity.VerificationRequest, error) {
	return getRecord[entity.VerificationRequest](ctx, r.store, kvstore.VerificationKey(id), "Verification request")
}

func (r *kvVerificationRepository) List(ctx context.Context) ([]*entity.VerificationRequest, error) {
	reqs, err := kvstore.ScanPrimary[entity.VerificationRequest](ctx, r.store, kvstore.PrefixVerificationRequests)
	if err != nil {
		return nil, errors.Internal("Failed to list verification requests", err)
	}
	return reqs, nil
}

func (r *kvVerificationRepository) ListByListing(ctx context.Context, listingID string) ([]*entity.VerificationRequest, error) {
	reqs, err := kvstore.ResolveIndex[entity.VerificationRequest](ctx, r.store, kvstore.VerificationByListingPrefix(listingID), kvstore.VerificationKey)
	if err != nil {
		return nil, errors.Internal("Failed to list verification requests", err)
	}
	return reqs, nil
}

func (r *kvVerificationRepository) Update(ctx context.Context, id string, fn func(*entity.VerificationRequest) error) (*entity.VerificationRequest, error) {
	return updateRecord(ctx, r.store, kvstore.VerificationKey(id), "Verification request", fn)
}
