package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/policy"
	"localmarket/internal/domain/repository"
	"localmarket/pkg/errors"
	"localmarket/pkg/logger"
)

type VerificationUseCase struct {
	verificationRepo repository.VerificationRepository
	listingRepo      repository.ListingRepository
	sellerRepo       repository.SellerRepository
	publisher        EventPublisher
}

func NewVerificationUseCase(
	verificationRepo repository.VerificationRepository,
	listingRepo repository.ListingRepository,
	sellerRepo repository.SellerRepository,
	publisher EventPublisher,
) *VerificationUseCase {
	return &VerificationUseCase{
		verificationRepo: verificationRepo,
		listingRepo:      listingRepo,
		sellerRepo:       sellerRepo,
		publisher:        publisher,
	}
}

type CreateVerificationInput struct {
	ListingID    string
	Type         string
	EvidenceURLs []string
}

type DecideVerificationInput struct {
	Approved bool
	Comment  string
}

func (uc *VerificationUseCase) Create(ctx context.Context, actor policy.Actor, input CreateVerificationInput) (*entity.VerificationRequest, error) {
	if input.Type == "" {
		input.Type = entity.VerificationItem
	}
	if !entity.ValidVerificationType(input.Type) {
		return nil, errors.BadRequest("type must be one of: item-verification phone-verification bank-verification id-verification", nil)
	}
	if input.Type == entity.VerificationItem && input.ListingID == "" {
		return nil, errors.BadRequest("listing_id is required for item verification", nil)
	}

	var listing *entity.Listing
	if input.ListingID != "" {
		var err error
		if listing, err = uc.listingRepo.GetByID(ctx, input.ListingID); err != nil {
			return nil, err
		}
	}
	if err := policy.Authorize(actor, policy.RequestVerification, listing); err != nil {
		return nil, err
	}
	if input.Type == entity.VerificationItem {
		if err := uc.ensureNoPendingItemRequest(ctx, input.ListingID); err != nil {
			return nil, err
		}
	}

	evidence := input.EvidenceURLs
	if evidence == nil {
		evidence = []string{}
	}

	req := &entity.VerificationRequest{
		ID:           uuid.New().String(),
		ListingID:    input.ListingID,
		SellerID:     actor.UserID,
		Type:         input.Type,
		Status:       entity.VerificationPending,
		EvidenceURLs: evidence,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.verificationRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (uc *VerificationUseCase) ensureNoPendingItemRequest(ctx context.Context, listingID string) error {
	existing, err := uc.verificationRepo.ListByListing(ctx, listingID)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.Type == entity.VerificationItem && r.Status == entity.VerificationPending {
			return errors.Conflict("This listing already has a pending verification request")
		}
	}
	return nil
}

// List returns requests newest first, optionally narrowed to one status.
func (uc *VerificationUseCase) List(ctx context.Context, actor policy.Actor, status string) ([]*entity.VerificationRequest, error) {
	if err := policy.Authorize(actor, policy.ModerateVerification, nil); err != nil {
		return nil, err
	}

	reqs, err := uc.verificationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if status != "" {
		filtered := reqs[:0]
		for _, r := range reqs {
			if r.Status == status {
				filtered = append(filtered, r)
			}
		}
		reqs = filtered
	}
	sortByNewest(reqs, func(r *entity.VerificationRequest) time.Time { return r.CreatedAt })
	return reqs, nil
}

// Decide settles a pending request. Deciding is guarded on the request so
// two admins cannot both settle it; the approval cascade then sets exactly
// the flag the request type vouches for.
func (uc *VerificationUseCase) Decide(ctx context.Context, actor policy.Actor, id string, input DecideVerificationInput) (*entity.VerificationRequest, error) {
	if err := policy.Authorize(actor, policy.ModerateVerification, nil); err != nil {
		return nil, err
	}

	req, err := uc.verificationRepo.Update(ctx, id, func(r *entity.VerificationRequest) error {
		if r.Status != entity.VerificationPending {
			return errors.BadRequest("Verification request has already been "+r.Status, nil)
		}
		now := time.Now().UTC()
		r.Status = entity.VerificationRejected
		if input.Approved {
			r.Status = entity.VerificationApproved
		}
		comment := input.Comment
		r.AdminComment = &comment
		r.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Status == entity.VerificationApproved {
		if err := uc.cascade(ctx, req); err != nil {
			return nil, err
		}
	}

	publish(ctx, uc.publisher, entity.EventVerificationDecided, req.ID, actor.UserID, map[string]any{
		"type":       req.Type,
		"status":     req.Status,
		"listing_id": req.ListingID,
		"seller_id":  req.SellerID,
	})
	return req, nil
}

// cascade tolerates a target that disappeared after the request was filed.
func (uc *VerificationUseCase) cascade(ctx context.Context, req *entity.VerificationRequest) error {
	var err error
	switch req.Type {
	case entity.VerificationItem:
		_, err = uc.listingRepo.Update(ctx, req.ListingID, func(l *entity.Listing) error {
			l.VerifiedFlag = true
			return nil
		})
	case entity.VerificationPhone, entity.VerificationBank, entity.VerificationID:
		_, err = uc.sellerRepo.Update(ctx, req.SellerID, func(s *entity.SellerProfile) error {
			req.ApplyTo(s)
			return nil
		})
	}

	if isNotFound(err) {
		logger.Warn("Verification %s approved but its %s target is gone", req.ID, req.Type)
		return nil
	}
	return err
}
