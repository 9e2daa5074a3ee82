package entity

import (
	"math"
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"

	DeliveryCollection = "collection"
	DeliveryDelivery   = "delivery"
)

type Order struct {
	ID             string     `json:"id"`
	BuyerID        string     `json:"buyer_id"`
	SellerID       string     `json:"seller_id"`
	ListingID      string     `json:"listing_id"`
	Quantity       int        `json:"quantity"`
	TotalCents     int64      `json:"total_cents"`
	Status         string     `json:"status"`
	DeliveryMethod string     `json:"delivery_method"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

var orderTransitions = map[string][]string{
	OrderStatusPending: {OrderStatusPaid, OrderStatusShipped},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusDelivered},
	OrderStatusShipped: {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
// Delivered is terminal.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CountsAsRevenue reports whether the order's total is booked as revenue.
func (o *Order) CountsAsRevenue() bool {
	return o.Status == OrderStatusPaid || o.Status == OrderStatusDelivered
}

func (o *Order) IsParty(userID string) bool {
	return o.BuyerID == userID || o.SellerID == userID
}

// OrderTotal multiplies a unit price by qty. It reports false when the
// total does not fit in int64 cents.
func OrderTotal(priceCents int64, qty int) (int64, bool) {
	if qty < 0 || priceCents < 0 {
		return 0, false
	}
	if qty > 0 && priceCents > math.MaxInt64/int64(qty) {
		return 0, false
	}
	return priceCents * int64(qty), true
}
