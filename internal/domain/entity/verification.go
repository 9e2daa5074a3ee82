package entity

import (
	"time"
)

const (
	VerificationItem  = "item-verification"
	VerificationPhone = "phone-verification"
	VerificationBank  = "bank-verification"
	VerificationID    = "id-verification"

	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type VerificationRequest struct {
	ID           string     `json:"id"`
	ListingID    string     `json:"listing_id"`
	SellerID     string     `json:"seller_id"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	EvidenceURLs []string   `json:"evidence_urls"`
	AdminComment *string    `json:"admin_comment"`
	CreatedAt    time.Time  `json:"created_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

func ValidVerificationType(t string) bool {
	switch t {
	case VerificationItem, VerificationPhone, VerificationBank, VerificationID:
		return true
	}
	return false
}

// ApplyTo sets the seller flag that an approved request of this type
// vouches for. Item verification touches the listing instead and is a no-op
// here.
func (v *VerificationRequest) ApplyTo(s *SellerProfile) {
	switch v.Type {
	case VerificationPhone:
		s.PhoneVerified = true
	case VerificationBank:
		s.BankVerified = true
	case VerificationID:
		s.IDVerified = true
	}
}
