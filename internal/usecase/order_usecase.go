package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/policy"
	"localmarket/internal/domain/repository"
	"localmarket/pkg/errors"
)

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	publisher   EventPublisher
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	publisher EventPublisher,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// OrderView carries the related records a client needs to render an order.
// Listing is nil once the listing has been deleted.
type OrderView struct {
	*entity.Order
	Listing *entity.Listing `json:"listing"`
	Buyer   *entity.User    `json:"buyer,omitempty"`
	Seller  *entity.User    `json:"seller,omitempty"`
}

type CreateOrderInput struct {
	ListingID      string
	Quantity       int
	DeliveryMethod string
}

// Create reserves stock and writes the order in one guarded step, so the
// total is fixed at the price seen by the reservation.
func (uc *OrderUseCase) Create(ctx context.Context, actor policy.Actor, input CreateOrderInput) (*entity.Order, error) {
	if err := policy.Authorize(actor, policy.PlaceOrder, nil); err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, errors.BadRequest("quantity must be at least 1", nil)
	}
	if input.DeliveryMethod == "" {
		input.DeliveryMethod = entity.DeliveryCollection
	}
	if input.DeliveryMethod != entity.DeliveryCollection && input.DeliveryMethod != entity.DeliveryDelivery {
		return nil, errors.BadRequest("delivery_method must be one of: collection delivery", nil)
	}

	orderID := uuid.New().String()
	now := time.Now().UTC()

	order, _, err := uc.orderRepo.Place(ctx, input.ListingID, func(l *entity.Listing) (*entity.Order, error) {
		total, ok := entity.OrderTotal(l.PriceCents, input.Quantity)
		if !ok {
			return nil, errors.BadRequest("Order total is too large", nil)
		}
		if !l.Reserve(input.Quantity) {
			return nil, errors.BadRequest("Insufficient quantity", nil)
		}
		return &entity.Order{
			ID:             orderID,
			BuyerID:        actor.UserID,
			SellerID:       l.SellerID,
			ListingID:      l.ID,
			Quantity:       input.Quantity,
			TotalCents:     total,
			Status:         entity.OrderStatusPending,
			DeliveryMethod: input.DeliveryMethod,
			CreatedAt:      now,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.publisher, entity.EventOrderPlaced, order.ID, actor.UserID, map[string]any{
		"listing_id":  order.ListingID,
		"seller_id":   order.SellerID,
		"quantity":    order.Quantity,
		"total_cents": order.TotalCents,
	})
	return order, nil
}

func (uc *OrderUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*OrderView, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ViewOrder, order); err != nil {
		return nil, err
	}

	views, err := uc.enrich(ctx, []*entity.Order{order}, true, true)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListForBuyer attaches listing and seller to each of the caller's purchases.
func (uc *OrderUseCase) ListForBuyer(ctx context.Context, actor policy.Actor) ([]*OrderView, error) {
	if actor.UserID == "" {
		return nil, errors.Unauthorized("Unauthorized", nil)
	}
	orders, err := uc.orderRepo.ListByBuyer(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return uc.enrich(ctx, orders, false, true)
}

// ListForSeller attaches listing and buyer to each order of the caller's
// listings.
func (uc *OrderUseCase) ListForSeller(ctx context.Context, actor policy.Actor) ([]*OrderView, error) {
	if actor.UserID == "" {
		return nil, errors.Unauthorized("Unauthorized", nil)
	}
	orders, err := uc.orderRepo.ListBySeller(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return uc.enrich(ctx, orders, true, false)
}

func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor policy.Actor, id, status string) (*entity.Order, error) {
	var from string
	order, err := uc.orderRepo.Update(ctx, id, func(o *entity.Order) error {
		if err := policy.Authorize(actor, policy.UpdateOrderStatus, o); err != nil {
			return err
		}
		if !entity.CanTransition(o.Status, status) {
			return errors.BadRequest("Cannot change order status from "+o.Status+" to "+status, nil)
		}
		now := time.Now().UTC()
		from = o.Status
		o.Status = status
		o.UpdatedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.publisher, entity.EventOrderStatusChanged, order.ID, actor.UserID, map[string]any{
		"from": from,
		"to":   order.Status,
	})
	return order, nil
}

func (uc *OrderUseCase) enrich(ctx context.Context, orders []*entity.Order, withBuyer, withSeller bool) ([]*OrderView, error) {
	sortByNewest(orders, func(o *entity.Order) time.Time { return o.CreatedAt })

	listingIDs := make([]string, 0, len(orders))
	userIDs := make([]string, 0, 2*len(orders))
	for _, o := range orders {
		listingIDs = append(listingIDs, o.ListingID)
		if withBuyer {
			userIDs = append(userIDs, o.BuyerID)
		}
		if withSeller {
			userIDs = append(userIDs, o.SellerID)
		}
	}

	listings, err := uc.listingRepo.GetByIDs(ctx, listingIDs)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		v := &OrderView{Order: o, Listing: listings[o.ListingID]}
		if withBuyer {
			v.Buyer = users[o.BuyerID]
		}
		if withSeller {
			v.Seller = users[o.SellerID]
		}
		views[i] = v
	}
	return views, nil
}
