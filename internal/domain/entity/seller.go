package entity

// SellerProfile is stored at sellers:{user_id}, one per seller.
type SellerProfile struct {
	UserID        string   `json:"user_id"`
	BusinessName  string   `json:"business_name"`
	Description   string   `json:"description"`
	LocationLat   *float64 `json:"location_lat"`
	LocationLng   *float64 `json:"location_lng"`
	AddressText   string   `json:"address_text"`
	BankVerified  bool     `json:"bank_verified"`
	PhoneVerified bool     `json:"phone_verified"`
	IDVerified    bool     `json:"id_verified"`
}

func NewSellerProfile(userID, businessName string) *SellerProfile {
	return &SellerProfile{
		UserID:       userID,
		BusinessName: businessName,
	}
}
