package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localmarket/internal/domain/entity"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

func TestCreateListingStoresCents(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")

	l, err := m.listings.Create(ctx, seller, CreateListingInput{
		Title:    "Kettle",
		Category: "home",
		Price:    100.00,
		Quantity: 2,
		Images:   []string{"https://img/a.jpg", "https://img/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), l.PriceCents)
	assert.Equal(t, "ZAR", l.Currency)
	assert.Equal(t, entity.ConditionNew, l.Condition)
	assert.Equal(t, entity.ListingStatusPublished, l.Status)
	assert.False(t, l.VerifiedFlag)

	view, err := m.listings.Get(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, view.Images, 2)
	assert.True(t, view.Images[0].IsPrimary)
	assert.Equal(t, "https://img/a.jpg", view.Images[0].ImageURL)
	require.NotNil(t, view.Seller)
	assert.Equal(t, seller.UserID, view.Seller.ID)
	require.NotNil(t, view.SellerProfile)
	assert.Equal(t, 100.00, entity.FromCents(view.PriceCents))
}

func TestCreateListingValidation(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")

	cases := map[string]CreateListingInput{
		"missing title":   {Category: "home", Price: 1},
		"bad category":    {Title: "x", Category: "weapons", Price: 1},
		"negative price":  {Title: "x", Category: "home", Price: -1},
		"huge price":      {Title: "x", Category: "home", Price: 1e20},
		"bad condition":   {Title: "x", Category: "home", Condition: "broken"},
		"negative stock":  {Title: "x", Category: "home", Quantity: -1},
		"too many images": {Title: "x", Category: "home", Images: make([]string, 11)},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := m.listings.Create(ctx, seller, input)
			assert.True(t, errors.Is(err, errors.CodeBadRequest), "got %v", err)
		})
	}
}

func TestSearchFiltersSortsAndPaginates(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	phone := m.listing(t, seller, "Old Phone", "electronics", 30, 1, base.Add(1*time.Hour))
	tablet := m.listing(t, seller, "Tablet", "electronics", 50, 1, base.Add(3*time.Hour))
	m.listing(t, seller, "Laptop", "electronics", 500, 1, base.Add(2*time.Hour))
	m.listing(t, seller, "Cable", "electronics", 5, 1, base.Add(4*time.Hour))
	m.listing(t, seller, "Sofa", "home", 40, 1, base.Add(5*time.Hour))
	radio := m.listing(t, seller, "Radio", "electronics", 10, 1, base)

	page, err := m.listings.Search(ctx, ListingQuery{
		Category: "electronics",
		MinPrice: ptr(10.0),
		MaxPrice: ptr(50.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, DefaultListingLimit, page.Limit)
	require.Len(t, page.Listings, 3)
	assert.Equal(t, tablet.ID, page.Listings[0].ID)
	assert.Equal(t, phone.ID, page.Listings[1].ID)
	assert.Equal(t, radio.ID, page.Listings[2].ID)

	page, err = m.listings.Search(ctx, ListingQuery{Category: "electronics", Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Listings, 2)
	assert.Equal(t, tablet.ID, page.Listings[0].ID)

	page, err = m.listings.Search(ctx, ListingQuery{Query: "PHONE"})
	require.NoError(t, err)
	require.Len(t, page.Listings, 1)
	assert.Equal(t, phone.ID, page.Listings[0].ID)

	page, err = m.listings.Search(ctx, ListingQuery{Offset: 100})
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)
	assert.Empty(t, page.Listings)

	page, err = m.listings.Search(ctx, ListingQuery{Limit: math.MaxInt, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, MaxListingLimit, page.Limit)
	assert.Len(t, page.Listings, 5)
}

func TestSearchDefaultsToPublished(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")
	buyer := m.signup(t, "b@market.test", "")

	sold := m.listing(t, seller, "Chair", "home", 20, 1, time.Time{})
	m.listing(t, seller, "Table", "home", 20, 1, time.Time{})

	_, err := m.orders.Create(ctx, buyer, CreateOrderInput{ListingID: sold.ID, Quantity: 1})
	require.NoError(t, err)

	page, err := m.listings.Search(ctx, ListingQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	page, err = m.listings.Search(ctx, ListingQuery{Status: entity.ListingStatusSold})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, sold.ID, page.Listings[0].ID)
}

func TestUpdateListingAllowList(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")
	other := m.signup(t, "o@market.test", "seller")
	l := m.listing(t, seller, "Bike", "sports", 100, 1, time.Time{})

	_, err := m.listings.Update(ctx, other, l.ID, ListingUpdate{Title: ptr("Mine now")})
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	updated, err := m.listings.Update(ctx, seller, l.ID, ListingUpdate{Price: ptr(12.5), Title: ptr("Red bike")})
	require.NoError(t, err)
	assert.Equal(t, int64(1250), updated.PriceCents)
	assert.Equal(t, "Red bike", updated.Title)
	assert.False(t, updated.VerifiedFlag)
	assert.Equal(t, seller.UserID, updated.SellerID)
	assert.NotNil(t, updated.UpdatedAt)

	updated, err = m.listings.Update(ctx, seller, l.ID, ListingUpdate{Quantity: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusSold, updated.Status)

	_, err = m.listings.Update(ctx, seller, l.ID, ListingUpdate{Status: ptr(entity.ListingStatusPublished)})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	updated, err = m.listings.Update(ctx, seller, l.ID, ListingUpdate{Quantity: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusPublished, updated.Status)

	_, err = m.listings.Update(ctx, seller, "missing", ListingUpdate{Title: ptr("x")})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestDeleteListingRemovesIndexAndImages(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")
	other := m.signup(t, "o@market.test", "")

	l, err := m.listings.Create(ctx, seller, CreateListingInput{
		Title: "Lamp", Category: "home", Price: 10, Images: []string{"https://img/1.jpg"},
	})
	require.NoError(t, err)
	keep := m.listing(t, seller, "Rug", "home", 10, 1, time.Time{})

	assert.True(t, errors.Is(m.listings.Delete(ctx, other, l.ID), errors.CodeForbidden))
	require.NoError(t, m.listings.Delete(ctx, seller, l.ID))

	mine, err := m.listings.ListMine(ctx, seller)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, keep.ID, mine[0].ID)

	entries, err := m.store.ScanPrefix(ctx, kvstore.ListingImagePrefix(l.ID))
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = m.listings.Get(ctx, l.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Contains(t, m.publisher.types(), entity.EventListingDeleted)
}
