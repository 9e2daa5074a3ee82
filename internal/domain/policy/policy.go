// Package policy decides who may do what. Every ownership and role check in
// the service goes through Authorize so handlers and use cases cannot drift
// apart.
package policy

import (
	"localmarket/internal/domain/entity"
	"localmarket/pkg/errors"
)

type Action string

const (
	ViewUser             Action = "user:view"
	CreateListing        Action = "listing:create"
	UpdateListing        Action = "listing:update"
	DeleteListing        Action = "listing:delete"
	PlaceOrder           Action = "order:place"
	ViewOrder            Action = "order:view"
	UpdateOrderStatus    Action = "order:update-status"
	ReviewOrder          Action = "order:review"
	RequestVerification  Action = "verification:request"
	ModerateVerification Action = "verification:moderate"
	FileReport           Action = "report:file"
	ModerateReports      Action = "report:moderate"
	ViewAnalytics        Action = "analytics:view"
	AdminAccess          Action = "admin:access"
)

// Actor is the authenticated caller. Role comes from the stored user record,
// never from token claims, and is empty when the caller has no record yet.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

type rule func(actor Actor, resource any) bool

var rules = map[Action]rule{
	ViewUser:             selfOrAdmin,
	CreateListing:        authenticated,
	UpdateListing:        listingOwner,
	DeleteListing:        listingOwner,
	PlaceOrder:           authenticated,
	ViewOrder:            orderParty,
	UpdateOrderStatus:    orderParty,
	ReviewOrder:          orderBuyer,
	RequestVerification:  verificationOwner,
	ModerateVerification: admin,
	FileReport:           authenticated,
	ModerateReports:      admin,
	ViewAnalytics:        admin,
	AdminAccess:          admin,
}

// Authorize returns nil when actor may perform action on resource and a
// Forbidden error otherwise. Unknown actions are denied.
func Authorize(actor Actor, action Action, resource any) error {
	if actor.UserID == "" {
		return errors.Unauthorized("Unauthorized", nil)
	}
	allow, ok := rules[action]
	if !ok || !allow(actor, resource) {
		if isAdminOnly(action) {
			return errors.Forbidden("Forbidden - Admin only", nil)
		}
		return errors.Forbidden("Forbidden", nil)
	}
	return nil
}

func isAdminOnly(action Action) bool {
	switch action {
	case ModerateVerification, ModerateReports, ViewAnalytics, AdminAccess:
		return true
	}
	return false
}

func authenticated(Actor, any) bool { return true }

func admin(actor Actor, _ any) bool { return actor.IsAdmin() }

// selfOrAdmin expects the target user id.
func selfOrAdmin(actor Actor, resource any) bool {
	id, _ := resource.(string)
	return actor.UserID == id || actor.IsAdmin()
}

func listingOwner(actor Actor, resource any) bool {
	l, ok := resource.(*entity.Listing)
	return ok && l != nil && l.SellerID == actor.UserID
}

func orderParty(actor Actor, resource any) bool {
	o, ok := resource.(*entity.Order)
	return ok && o != nil && o.IsParty(actor.UserID)
}

func orderBuyer(actor Actor, resource any) bool {
	o, ok := resource.(*entity.Order)
	return ok && o != nil && o.BuyerID == actor.UserID
}

// verificationOwner accepts a nil listing for seller-level requests.
func verificationOwner(actor Actor, resource any) bool {
	l, ok := resource.(*entity.Listing)
	if !ok || l == nil {
		return true
	}
	return l.SellerID == actor.UserID
}
