package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localmarket/internal/domain/entity"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

func TestPhoneVerificationSetsOnlyPhoneFlag(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")
	admin := m.admin(t)

	req, err := m.verifications.Create(ctx, seller, CreateVerificationInput{Type: entity.VerificationPhone})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationPending, req.Status)
	assert.NotNil(t, req.EvidenceURLs)

	_, err = m.verifications.Decide(ctx, seller, req.ID, DecideVerificationInput{Approved: true})
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	decided, err := m.verifications.Decide(ctx, admin, req.ID, DecideVerificationInput{Approved: true, Comment: "called them"})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationApproved, decided.Status)
	require.NotNil(t, decided.AdminComment)
	assert.Equal(t, "called them", *decided.AdminComment)
	assert.NotNil(t, decided.ReviewedAt)

	profile, err := kvstore.GetJSON[entity.SellerProfile](ctx, m.store, kvstore.SellerKey(seller.UserID))
	require.NoError(t, err)
	assert.True(t, profile.PhoneVerified)
	assert.False(t, profile.BankVerified)
	assert.False(t, profile.IDVerified)

	_, err = m.verifications.Decide(ctx, admin, req.ID, DecideVerificationInput{Approved: false})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestItemVerificationSetsOnlyListingFlag(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")
	other := m.signup(t, "o@market.test", "seller")
	admin := m.admin(t)
	l := m.listing(t, seller, "Watch", "fashion", 900, 1, time.Time{})

	_, err := m.verifications.Create(ctx, other, CreateVerificationInput{ListingID: l.ID})
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = m.verifications.Create(ctx, seller, CreateVerificationInput{})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	req, err := m.verifications.Create(ctx, seller, CreateVerificationInput{
		ListingID:    l.ID,
		EvidenceURLs: []string{"https://img/receipt.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationItem, req.Type)

	_, err = m.verifications.Decide(ctx, admin, req.ID, DecideVerificationInput{Approved: true})
	require.NoError(t, err)

	view, err := m.listings.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, view.VerifiedFlag)

	profile, err := kvstore.GetJSON[entity.SellerProfile](ctx, m.store, kvstore.SellerKey(seller.UserID))
	require.NoError(t, err)
	assert.False(t, profile.PhoneVerified)
	assert.False(t, profile.BankVerified)
	assert.False(t, profile.IDVerified)
}

func TestRejectedVerificationLeavesFlags(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")
	admin := m.admin(t)

	req, err := m.verifications.Create(ctx, seller, CreateVerificationInput{Type: entity.VerificationBank})
	require.NoError(t, err)

	decided, err := m.verifications.Decide(ctx, admin, req.ID, DecideVerificationInput{Approved: false, Comment: "blurry"})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationRejected, decided.Status)

	profile, err := kvstore.GetJSON[entity.SellerProfile](ctx, m.store, kvstore.SellerKey(seller.UserID))
	require.NoError(t, err)
	assert.False(t, profile.BankVerified)

	pending, err := m.verifications.List(ctx, admin, entity.VerificationPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := m.verifications.List(ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, m.publisher.types(), entity.EventVerificationDecided)
}

func TestOnePendingItemRequestPerListing(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	seller := m.signup(t, "s@market.test", "seller")
	admin := m.admin(t)
	l := m.listing(t, seller, "Bike", "sports", 1500, 1, time.Time{})

	first, err := m.verifications.Create(ctx, seller, CreateVerificationInput{ListingID: l.ID})
	require.NoError(t, err)

	_, err = m.verifications.Create(ctx, seller, CreateVerificationInput{ListingID: l.ID})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	_, err = m.verifications.Decide(ctx, admin, first.ID, DecideVerificationInput{Approved: false})
	require.NoError(t, err)

	_, err = m.verifications.Create(ctx, seller, CreateVerificationInput{ListingID: l.ID})
	assert.NoError(t, err)
}
