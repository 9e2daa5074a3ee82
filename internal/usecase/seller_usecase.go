package usecase

import (
	"context"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/policy"
	"localmarket/internal/domain/repository"
	"localmarket/pkg/errors"
)

type SellerUseCase struct {
	sellerRepo repository.SellerRepository
	userRepo   repository.UserRepository
}

func NewSellerUseCase(sellerRepo repository.SellerRepository, userRepo repository.UserRepository) *SellerUseCase {
	return &SellerUseCase{
		sellerRepo: sellerRepo,
		userRepo:   userRepo,
	}
}

// SellerProfileView is null-tolerant: a buyer who never set up a shop gets
// a nil seller.
type SellerProfileView struct {
	Seller *entity.SellerProfile `json:"seller"`
	User   *entity.User          `json:"user"`
}

// SellerProfileUpdate lists the only fields a seller may change. The
// verification flags are set by moderation alone.
type SellerProfileUpdate struct {
	BusinessName *string
	Description  *string
	AddressText  *string
	LocationLat  *float64
	LocationLng  *float64
}

func (uc *SellerUseCase) GetProfile(ctx context.Context, actor policy.Actor) (*SellerProfileView, error) {
	if actor.UserID == "" {
		return nil, errors.Unauthorized("Unauthorized", nil)
	}

	view := &SellerProfileView{}

	seller, err := uc.sellerRepo.GetByUserID(ctx, actor.UserID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	view.Seller = seller

	user, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	view.User = user

	return view, nil
}

func (uc *SellerUseCase) UpdateProfile(ctx context.Context, actor policy.Actor, update SellerProfileUpdate) (*entity.SellerProfile, error) {
	if actor.UserID == "" {
		return nil, errors.Unauthorized("Unauthorized", nil)
	}

	return uc.sellerRepo.Upsert(ctx, actor.UserID, func(p *entity.SellerProfile) error {
		if update.BusinessName != nil {
			p.BusinessName = *update.BusinessName
		}
		if update.Description != nil {
			p.Description = *update.Description
		}
		if update.AddressText != nil {
			p.AddressText = *update.AddressText
		}
		if update.LocationLat != nil {
			p.LocationLat = update.LocationLat
		}
		if update.LocationLng != nil {
			p.LocationLng = update.LocationLng
		}
		return nil
	})
}
