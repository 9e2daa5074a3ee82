package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingReserve(t *testing.T) {
	l := &Listing{Quantity: 2, Status: ListingStatusPublished}

	assert.True(t, l.Reserve(1))
	assert.Equal(t, 1, l.Quantity)
	assert.Equal(t, ListingStatusPublished, l.Status)

	assert.False(t, l.Reserve(2))
	assert.Equal(t, 1, l.Quantity)

	assert.True(t, l.Reserve(1))
	assert.Equal(t, 0, l.Quantity)
	assert.Equal(t, ListingStatusSold, l.Status)

	assert.False(t, l.Reserve(0))
}

func TestCentsRoundTrip(t *testing.T) {
	for _, price := range []float64{0, 0.01, 0.1, 1.15, 19.99, 100, 1234.56, 99999.99} {
		cents := ToCents(price)
		assert.InDelta(t, price, FromCents(cents), 0.001, "price %v", price)
	}
	assert.Equal(t, int64(10000), ToCents(100.00))
	assert.Equal(t, int64(1999), ToCents(19.99))
}

func TestValidPrice(t *testing.T) {
	assert.True(t, ValidPrice(0))
	assert.True(t, ValidPrice(MaxPrice))
	assert.False(t, ValidPrice(-0.01))
	assert.False(t, ValidPrice(1e20))
	assert.False(t, ValidPrice(math.NaN()))
}

func TestOrderTotal(t *testing.T) {
	total, ok := OrderTotal(1999, 3)
	assert.True(t, ok)
	assert.Equal(t, int64(5997), total)

	_, ok = OrderTotal(ToCents(MaxPrice), 100_000_000)
	assert.False(t, ok)

	_, ok = OrderTotal(math.MaxInt64, 2)
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{OrderStatusPending, OrderStatusPaid},
		{OrderStatusPending, OrderStatusShipped},
		{OrderStatusPaid, OrderStatusShipped},
		{OrderStatusPaid, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusDelivered},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusPaid},
		{OrderStatusDelivered, OrderStatusPending},
		{OrderStatusPending, OrderStatusPending},
		{OrderStatusPending, "cancelled"},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestMeanRating(t *testing.T) {
	assert.Equal(t, 0.0, MeanRating(nil))
	assert.Equal(t, 4.0, MeanRating([]*Review{{Rating: 4}}))
	assert.Equal(t, 4.3, MeanRating([]*Review{{Rating: 4}, {Rating: 4}, {Rating: 5}}))
	assert.Equal(t, 3.7, MeanRating([]*Review{{Rating: 5}, {Rating: 5}, {Rating: 1}}))
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 1, ClampRating(-3))
	assert.Equal(t, 1, ClampRating(0))
	assert.Equal(t, 3, ClampRating(3))
	assert.Equal(t, 5, ClampRating(9))
}

func TestVerificationApplyTo(t *testing.T) {
	s := &SellerProfile{}
	(&VerificationRequest{Type: VerificationPhone}).ApplyTo(s)
	assert.True(t, s.PhoneVerified)
	assert.False(t, s.BankVerified)
	assert.False(t, s.IDVerified)

	(&VerificationRequest{Type: VerificationItem}).ApplyTo(s)
	assert.False(t, s.BankVerified)
	assert.False(t, s.IDVerified)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 12)
	assert.Equal(t, "electronics", cats[0].ID)
	assert.Equal(t, "other", cats[11].ID)
	assert.True(t, ValidCategory("books"))
	assert.False(t, ValidCategory("weapons"))
}

func TestSortImages(t *testing.T) {
	images := []*ListingImage{
		{ID: "c", Position: 2},
		{ID: "a", Position: 0, IsPrimary: true},
		{ID: "b", Position: 1},
	}
	SortImages(images)
	assert.Equal(t, "a", images[0].ID)
	assert.Equal(t, "b", images[1].ID)
	assert.Equal(t, "c", images[2].ID)
}
