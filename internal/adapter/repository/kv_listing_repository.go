package repository

import (
	"context"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/repository"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

type kvListingRepository struct {
	store kvstore.Store
}

func NewKVListingRepository(store kvstore.Store) repository.ListingRepository {
	return &kvListingRepository{
		store: store,
	}
}

func (r *kvListingRepository) Create(ctx context.Context, listing *entity.Listing, images []*entity.ListingImage) error {
	mutations := make([]kvstore.Mutation, 0, 2+len(images))
	mutations = append(mutations,
		kvstore.Put(kvstore.ListingKey(listing.ID), listing),
		kvstore.Put(kvstore.ListingBySellerKey(listing.SellerID, listing.ID), listing.ID),
	)
	for _, img := range images {
		mutations = append(mutations, kvstore.Put(kvstore.ListingImageKey(listing.ID, img.ID), img))
	}

	if err := r.store.Apply(ctx, mutations...); err != nil {
		return errors.Internal("Failed to create listing", err)
	}
	return nil
}

func (r *kvListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return getRecord[entity.Listing](ctx, r.store, kvstore.ListingKey(id), "Listing")
}

func (r *kvListingRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Listing, error) {
	found, err := kvstore.GetManyJSON[entity.Listing](ctx, r.store, keysFor(ids, kvstore.ListingKey))
	if err != nil {
		return nil, errors.Internal("Failed to get listings", err)
	}
	return byID(found, kvstore.PrefixListings), nil
}

func (r *kvListingRepository) List(ctx context.Context) ([]*entity.Listing, error) {
	listings, err := kvstore.ScanPrimary[entity.Listing](ctx, r.store, kvstore.PrefixListings)
	if err != nil {
		return nil, errors.Internal("Failed to list listings", err)
	}
	return listings, nil
}

func (r *kvListingRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error) {
	listings, err := kvstore.ResolveIndex[entity.Listing](ctx, r.store, kvstore.ListingBySellerPrefix(sellerID), kvstore.ListingKey)
	if err != nil {
		return nil, errors.Internal("Failed to list seller listings", err)
	}
	return listings, nil
}

func (r *kvListingRepository) Images(ctx context.Context, listingID string) ([]*entity.ListingImage, error) {
	images, err := kvstore.ScanAll[entity.ListingImage](ctx, r.store, kvstore.ListingImagePrefix(listingID))
	if err != nil {
		return nil, errors.Internal("Failed to list listing images", err)
	}
	return images, nil
}

func (r *kvListingRepository) Update(ctx context.Context, id string, fn func(*entity.Listing) error) (*entity.Listing, error) {
	return updateRecord(ctx, r.store, kvstore.ListingKey(id), "Listing", fn)
}

func (r *kvListingRepository) Delete(ctx context.Context, listing *entity.Listing) error {
	entries, err := r.store.ScanPrefix(ctx, kvstore.ListingImagePrefix(listing.ID))
	if err != nil {
		return errors.Internal("Failed to list listing images", err)
	}

	mutations := make([]kvstore.Mutation, 0, 2+len(entries))
	mutations = append(mutations,
		kvstore.Del(kvstore.ListingKey(listing.ID)),
		kvstore.Del(kvstore.ListingBySellerKey(listing.SellerID, listing.ID)),
	)
	for _, e := range entries {
		mutations = append(mutations, kvstore.Del(e.Key))
	}

	if err := r.store.Apply(ctx, mutations...); err != nil {
		return errors.Internal("Failed to delete listing", err)
	}
	return nil
}
