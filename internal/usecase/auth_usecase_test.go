package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localmarket/internal/domain/entity"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

func TestSignupSellerCreatesProfile(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	u, err := m.auth.Signup(ctx, SignupInput{Email: "s@market.test", Password: "pw123456", Name: "Thandi", Phone: "+27", Role: "seller"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, u.Role)
	assert.False(t, u.PhoneVerified)
	assert.Equal(t, 0.0, u.Rating)

	profile, err := kvstore.GetJSON[entity.SellerProfile](ctx, m.store, kvstore.SellerKey(u.ID))
	require.NoError(t, err)
	assert.Equal(t, "Thandi", profile.BusinessName)
	assert.False(t, profile.BankVerified)
}

func TestSignupBuyerHasNoProfile(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	u, err := m.auth.Signup(ctx, SignupInput{Email: "b@market.test", Password: "pw123456", Name: "Sipho"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBuyer, u.Role)

	_, err = m.store.Get(ctx, kvstore.SellerKey(u.ID))
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestSignupRoleRules(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	_, err := m.auth.Signup(ctx, SignupInput{Email: "x@market.test", Password: "pw123456", Name: "X", Role: "admin"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	admin := m.admin(t)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
}

func TestSignupProviderRejection(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	m.signup(t, "dup@market.test", "")
	_, err := m.auth.Signup(ctx, SignupInput{Email: "dup@market.test", Password: "pw123456", Name: "Dup"})
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "email already exists", appErr.Message)
}

func TestSignupProviderOutageIsInternal(t *testing.T) {
	m := newMarket(t)
	m.identity.down = stderrors.New("dial tcp 10.0.0.1:443: connect: connection refused")

	_, err := m.auth.Signup(context.Background(), SignupInput{Email: "late@market.test", Password: "pw123456", Name: "Late"})
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.Status)
	assert.NotContains(t, appErr.Message, "dial tcp")
	assert.ErrorIs(t, err, m.identity.down)
}

func TestGetUserSelfOrAdmin(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	alice := m.signup(t, "alice@market.test", "")
	bob := m.signup(t, "bob@market.test", "seller")
	admin := m.admin(t)

	u, err := m.users.GetUser(ctx, alice, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice@market.test", u.Email)

	_, err = m.users.GetUser(ctx, bob, alice.UserID)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = m.users.GetUser(ctx, admin, alice.UserID)
	assert.NoError(t, err)

	_, err = m.users.GetUser(ctx, admin, "ghost")
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	actor, err := m.users.Actor(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, actor.Role)

	actor, err = m.users.Actor(ctx, "no-record")
	require.NoError(t, err)
	assert.Equal(t, "", actor.Role)
}
