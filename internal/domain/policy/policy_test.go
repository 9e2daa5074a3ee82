package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"localmarket/internal/domain/entity"
	"localmarket/pkg/errors"
)

func TestAuthorizeRequiresActor(t *testing.T) {
	err := Authorize(Actor{}, CreateListing, nil)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestAuthorizeViewUser(t *testing.T) {
	assert.NoError(t, Authorize(Actor{UserID: "u1"}, ViewUser, "u1"))
	assert.NoError(t, Authorize(Actor{UserID: "a1", Role: entity.RoleAdmin}, ViewUser, "u1"))

	err := Authorize(Actor{UserID: "u2", Role: entity.RoleSeller}, ViewUser, "u1")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestAuthorizeListingOwnership(t *testing.T) {
	l := &entity.Listing{ID: "l1", SellerID: "s1"}

	assert.NoError(t, Authorize(Actor{UserID: "s1"}, UpdateListing, l))
	assert.NoError(t, Authorize(Actor{UserID: "s1"}, DeleteListing, l))

	// Admins moderate through verification and reports, not by editing.
	err := Authorize(Actor{UserID: "a1", Role: entity.RoleAdmin}, DeleteListing, l)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	err = Authorize(Actor{UserID: "s2"}, UpdateListing, (*entity.Listing)(nil))
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestAuthorizeOrderParties(t *testing.T) {
	o := &entity.Order{BuyerID: "b1", SellerID: "s1"}

	assert.NoError(t, Authorize(Actor{UserID: "b1"}, ViewOrder, o))
	assert.NoError(t, Authorize(Actor{UserID: "s1"}, UpdateOrderStatus, o))
	assert.NoError(t, Authorize(Actor{UserID: "b1"}, ReviewOrder, o))

	assert.Error(t, Authorize(Actor{UserID: "s1"}, ReviewOrder, o))
	assert.Error(t, Authorize(Actor{UserID: "x"}, ViewOrder, o))
}

func TestAuthorizeAdminOnly(t *testing.T) {
	for _, action := range []Action{ModerateVerification, ModerateReports, ViewAnalytics, AdminAccess} {
		err := Authorize(Actor{UserID: "u1", Role: entity.RoleSeller}, action, nil)
		if assert.Error(t, err) {
			appErr, ok := errors.As(err)
			assert.True(t, ok)
			assert.Equal(t, "Forbidden - Admin only", appErr.Message)
		}
		assert.NoError(t, Authorize(Actor{UserID: "a1", Role: entity.RoleAdmin}, action, nil))
	}
}

func TestAuthorizeUnknownActionDenied(t *testing.T) {
	err := Authorize(Actor{UserID: "a1", Role: entity.RoleAdmin}, Action("listing:burn"), nil)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestAuthorizeVerificationRequest(t *testing.T) {
	assert.NoError(t, Authorize(Actor{UserID: "s1"}, RequestVerification, nil))
	assert.NoError(t, Authorize(Actor{UserID: "s1"}, RequestVerification, &entity.Listing{SellerID: "s1"}))
	assert.Error(t, Authorize(Actor{UserID: "s2"}, RequestVerification, &entity.Listing{SellerID: "s1"}))
}
