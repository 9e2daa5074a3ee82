package repository

import (
	"context"

	"localmarket/internal/domain/entity"
)

type UserRepository interface {
	// Create writes the user and, when seller is non-nil, its seller
	// profile in one batch.
	Create(ctx context.Context, user *entity.User, seller *entity.SellerProfile) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByIDs omits ids with no stored user.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}

type SellerRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.SellerProfile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*entity.SellerProfile, error)
	// Upsert applies fn to the stored profile, or to a blank one when the
	// user has none yet.
	Upsert(ctx context.Context, userID string, fn func(*entity.SellerProfile) error) (*entity.SellerProfile, error)
	// Update applies fn to an existing profile and fails with NotFound
	// otherwise.
	Update(ctx context.Context, userID string, fn func(*entity.SellerProfile) error) (*entity.SellerProfile, error)
}
