package entity

import (
	"math"
	"sort"
	"time"
)

const (
	ListingStatusPublished = "published"
	ListingStatusSold      = "sold"

	ConditionNew  = "new"
	ConditionUsed = "used"

	MaxListingImages = 10

	// MaxPrice is the largest listing price in major units.
	MaxPrice = 1_000_000_000
)

type Listing struct {
	ID           string     `json:"id"`
	SellerID     string     `json:"seller_id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	PriceCents   int64      `json:"price_cents"`
	Currency     string     `json:"currency"`
	Description  string     `json:"description"`
	Condition    string     `json:"condition"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	VerifiedFlag bool       `json:"verified_flag"`
	LocationLat  *float64   `json:"location_lat"`
	LocationLng  *float64   `json:"location_lng"`
	AddressText  string     `json:"address_text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Reserve takes qty units off the listing and marks it sold when the last
// unit goes. It reports false when not enough units remain.
func (l *Listing) Reserve(qty int) bool {
	if qty <= 0 || l.Quantity < qty {
		return false
	}
	l.Quantity -= qty
	if l.Quantity == 0 {
		l.Status = ListingStatusSold
	}
	return true
}

type ListingImage struct {
	ID        string `json:"id"`
	ListingID string `json:"listing_id"`
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
	Position  int    `json:"position"`
}

// SortImages orders images the way they were submitted, primary first.
func SortImages(images []*ListingImage) {
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].IsPrimary != images[j].IsPrimary {
			return images[i].IsPrimary
		}
		return images[i].Position < images[j].Position
	})
}

// ToCents converts a price in major units to integer cents, rounding half
// away from zero.
func ToCents(major float64) int64 {
	return int64(math.Round(major * 100))
}

// ValidPrice reports whether a major-unit price is within 0..MaxPrice.
func ValidPrice(major float64) bool {
	return major >= 0 && major <= MaxPrice
}

func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

func ValidCondition(c string) bool {
	return c == ConditionNew || c == ConditionUsed
}
