package repository

import (
	"context"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/repository"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

type kvUserRepository struct {
	store kvstore.Store
}

func NewKVUserRepository(store kvstore.Store) repository.UserRepository {
	return &kvUserRepository{
		store: store,
	}
}

func (r *kvUserRepository) Create(ctx context.Context, user *entity.User, seller *entity.SellerProfile) error {
	mutations := []kvstore.Mutation{kvstore.Put(kvstore.UserKey(user.ID), user)}
	if seller != nil {
		mutations = append(mutations, kvstore.Put(kvstore.SellerKey(user.ID), seller))
	}

	if err := r.store.Apply(ctx, mutations...); err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *kvUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return getRecord[entity.User](ctx, r.store, kvstore.UserKey(id), "User")
}

func (r *kvUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	found, err := kvstore.GetManyJSON[entity.User](ctx, r.store, keysFor(ids, kvstore.UserKey))
	if err != nil {
		return nil, errors.Internal("Failed to get users", err)
	}
	return byID(found, kvstore.PrefixUsers), nil
}

func (r *kvUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	users, err := kvstore.ScanPrimary[entity.User](ctx, r.store, kvstore.PrefixUsers)
	if err != nil {
		return nil, errors.Internal("Failed to list users", err)
	}
	return users, nil
}
