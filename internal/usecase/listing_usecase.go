package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/policy"
	"localmarket/internal/domain/repository"
	"localmarket/pkg/errors"
	"localmarket/pkg/utils"
)

const (
	DefaultListingLimit = utils.DefaultLimit
	MaxListingLimit     = utils.MaxLimit

	imageScanConcurrency = 8
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	sellerRepo  repository.SellerRepository
	publisher   EventPublisher
	currency    string
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	sellerRepo repository.SellerRepository,
	publisher EventPublisher,
	currency string,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		sellerRepo:  sellerRepo,
		publisher:   publisher,
		currency:    currency,
	}
}

// ListingView is a listing with its seller and images attached.
type ListingView struct {
	*entity.Listing
	Seller        *entity.User           `json:"seller,omitempty"`
	SellerProfile *entity.SellerProfile  `json:"seller_profile,omitempty"`
	Images        []*entity.ListingImage `json:"images"`
}

type ListingPage struct {
	Listings []*ListingView `json:"listings"`
	Total    int            `json:"total"`
	Offset   int            `json:"offset"`
	Limit    int            `json:"limit"`
}

// ListingQuery filters the public catalogue. Prices are in major units.
// An empty Status means published.
type ListingQuery struct {
	Category  string
	Query     string
	Condition string
	Status    string
	MinPrice  *float64
	MaxPrice  *float64
	Limit     int
	Offset    int
}

type CreateListingInput struct {
	Title       string
	Category    string
	Price       float64
	Description string
	Condition   string
	Quantity    int
	LocationLat *float64
	LocationLng *float64
	AddressText string
	Images      []string
}

// ListingUpdate is the allow-list of seller-editable fields. Nil means
// unchanged.
type ListingUpdate struct {
	Title       *string
	Category    *string
	Price       *float64
	Description *string
	Condition   *string
	Quantity    *int
	Status      *string
	LocationLat *float64
	LocationLng *float64
	AddressText *string
}

// Search filters the whole catalogue in memory, sorts newest first and
// then slices the page. Total is the filtered count before slicing. Limit
// is clamped to 1..MaxListingLimit.
func (uc *ListingUseCase) Search(ctx context.Context, q ListingQuery) (*ListingPage, error) {
	if q.Status == "" {
		q.Status = entity.ListingStatusPublished
	}
	q.Limit = utils.ClampLimit(q.Limit)
	if q.Offset < 0 {
		q.Offset = 0
	}

	all, err := uc.listingRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*entity.Listing, 0, len(all))
	for _, l := range all {
		if q.matches(l) {
			matched = append(matched, l)
		}
	}
	sortListings(matched)

	total := len(matched)
	start := min(q.Offset, total)
	end := start + min(q.Limit, total-start)

	views, err := uc.enrich(ctx, matched[start:end], true)
	if err != nil {
		return nil, err
	}

	return &ListingPage{
		Listings: views,
		Total:    total,
		Offset:   q.Offset,
		Limit:    q.Limit,
	}, nil
}

func (q ListingQuery) matches(l *entity.Listing) bool {
	if q.Status != "" && l.Status != q.Status {
		return false
	}
	if q.Category != "" && l.Category != q.Category {
		return false
	}
	if q.Condition != "" && l.Condition != q.Condition {
		return false
	}
	if q.MinPrice != nil && l.PriceCents < entity.ToCents(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && l.PriceCents > entity.ToCents(*q.MaxPrice) {
		return false
	}
	if q.Query != "" && !strings.Contains(strings.ToLower(l.Title), strings.ToLower(q.Query)) {
		return false
	}
	return true
}

// sortListings orders newest first; equal timestamps fall back to id so
// pages are stable across requests.
func sortListings(listings []*entity.Listing) {
	sort.Slice(listings, func(i, j int) bool {
		a, b := listings[i], listings[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func (uc *ListingUseCase) Get(ctx context.Context, id string) (*ListingView, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := uc.enrich(ctx, []*entity.Listing{listing}, true)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListMine returns the caller's own listings with images, newest first.
func (uc *ListingUseCase) ListMine(ctx context.Context, actor policy.Actor) ([]*ListingView, error) {
	if actor.UserID == "" {
		return nil, errors.Unauthorized("Unauthorized", nil)
	}
	listings, err := uc.listingRepo.ListBySeller(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	sortListings(listings)
	return uc.enrich(ctx, listings, false)
}

func (uc *ListingUseCase) Create(ctx context.Context, actor policy.Actor, input CreateListingInput) (*entity.Listing, error) {
	if err := policy.Authorize(actor, policy.CreateListing, nil); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("title is required", nil)
	}
	if !entity.ValidCategory(input.Category) {
		return nil, errors.BadRequest("Unknown category", nil)
	}
	if !entity.ValidPrice(input.Price) {
		return nil, errors.BadRequest("price must be between 0 and 1000000000", nil)
	}
	if input.Condition == "" {
		input.Condition = entity.ConditionNew
	}
	if !entity.ValidCondition(input.Condition) {
		return nil, errors.BadRequest("condition must be one of: new used", nil)
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		return nil, errors.BadRequest("quantity must not be negative", nil)
	}
	if len(input.Images) > entity.MaxListingImages {
		return nil, errors.BadRequest("A listing can have at most 10 images", nil)
	}

	listing := &entity.Listing{
		ID:          uuid.New().String(),
		SellerID:    actor.UserID,
		Title:       input.Title,
		Category:    input.Category,
		PriceCents:  entity.ToCents(input.Price),
		Currency:    uc.currency,
		Description: input.Description,
		Condition:   input.Condition,
		Quantity:    input.Quantity,
		Status:      entity.ListingStatusPublished,
		LocationLat: input.LocationLat,
		LocationLng: input.LocationLng,
		AddressText: input.AddressText,
		CreatedAt:   time.Now().UTC(),
	}

	images := make([]*entity.ListingImage, len(input.Images))
	for i, url := range input.Images {
		images[i] = &entity.ListingImage{
			ID:        uuid.New().String(),
			ListingID: listing.ID,
			ImageURL:  url,
			IsPrimary: i == 0,
			Position:  i,
		}
	}

	if err := uc.listingRepo.Create(ctx, listing, images); err != nil {
		return nil, err
	}
	return listing, nil
}

func (uc *ListingUseCase) Update(ctx context.Context, actor policy.Actor, id string, update ListingUpdate) (*entity.Listing, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}

	return uc.listingRepo.Update(ctx, id, func(l *entity.Listing) error {
		if err := policy.Authorize(actor, policy.UpdateListing, l); err != nil {
			return err
		}
		return update.apply(l, time.Now().UTC())
	})
}

func (u ListingUpdate) validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return errors.BadRequest("title must not be empty", nil)
	}
	if u.Category != nil && !entity.ValidCategory(*u.Category) {
		return errors.BadRequest("Unknown category", nil)
	}
	if u.Price != nil && !entity.ValidPrice(*u.Price) {
		return errors.BadRequest("price must be between 0 and 1000000000", nil)
	}
	if u.Condition != nil && !entity.ValidCondition(*u.Condition) {
		return errors.BadRequest("condition must be one of: new used", nil)
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return errors.BadRequest("quantity must not be negative", nil)
	}
	if u.Status != nil && *u.Status != entity.ListingStatusPublished && *u.Status != entity.ListingStatusSold {
		return errors.BadRequest("status must be one of: published sold", nil)
	}
	return nil
}

// apply keeps quantity and status consistent: no stock means sold, and
// restocking a sold listing republishes it unless the seller says otherwise.
func (u ListingUpdate) apply(l *entity.Listing, now time.Time) error {
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.Category != nil {
		l.Category = *u.Category
	}
	if u.Price != nil {
		l.PriceCents = entity.ToCents(*u.Price)
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Condition != nil {
		l.Condition = *u.Condition
	}
	if u.LocationLat != nil {
		l.LocationLat = u.LocationLat
	}
	if u.LocationLng != nil {
		l.LocationLng = u.LocationLng
	}
	if u.AddressText != nil {
		l.AddressText = *u.AddressText
	}
	if u.Quantity != nil {
		l.Quantity = *u.Quantity
		if l.Quantity > 0 && l.Status == entity.ListingStatusSold && u.Status == nil {
			l.Status = entity.ListingStatusPublished
		}
	}
	if u.Status != nil {
		l.Status = *u.Status
	}

	if l.Quantity == 0 {
		if u.Status != nil && *u.Status == entity.ListingStatusPublished {
			return errors.BadRequest("Cannot publish a listing with no stock", nil)
		}
		l.Status = entity.ListingStatusSold
	}

	l.UpdatedAt = &now
	return nil
}

func (uc *ListingUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.DeleteListing, listing); err != nil {
		return err
	}
	if err := uc.listingRepo.Delete(ctx, listing); err != nil {
		return err
	}

	publish(ctx, uc.publisher, entity.EventListingDeleted, listing.ID, actor.UserID, map[string]any{
		"seller_id": listing.SellerID,
	})
	return nil
}

// enrich attaches sellers with one batched read per entity family and
// scans each listing's images concurrently.
func (uc *ListingUseCase) enrich(ctx context.Context, listings []*entity.Listing, withSeller bool) ([]*ListingView, error) {
	views := make([]*ListingView, len(listings))
	for i, l := range listings {
		views[i] = &ListingView{Listing: l}
	}
	if len(listings) == 0 {
		return views, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageScanConcurrency)

	var (
		users    map[string]*entity.User
		profiles map[string]*entity.SellerProfile
	)
	if withSeller {
		sellerIDs := make([]string, 0, len(listings))
		for _, l := range listings {
			sellerIDs = append(sellerIDs, l.SellerID)
		}
		g.Go(func() error {
			var err error
			users, err = uc.userRepo.GetByIDs(gctx, sellerIDs)
			return err
		})
		g.Go(func() error {
			var err error
			profiles, err = uc.sellerRepo.GetByUserIDs(gctx, sellerIDs)
			return err
		})
	}

	for _, v := range views {
		v := v
		g.Go(func() error {
			images, err := uc.listingRepo.Images(gctx, v.ID)
			if err != nil {
				return err
			}
			entity.SortImages(images)
			v.Images = images
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if withSeller {
		for _, v := range views {
			v.Seller = users[v.SellerID]
			v.SellerProfile = profiles[v.SellerID]
		}
	}
	return views, nil
}
