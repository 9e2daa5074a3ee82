package kvstore

import "strings"

const (
	PrefixUsers                = "users:"
	PrefixSellers              = "sellers:"
	PrefixListings             = "listings:"
	PrefixListingImages        = "listing-images:"
	PrefixOrders               = "orders:"
	PrefixReviews              = "reviews:"
	PrefixReports              = "reports:"
	PrefixVerificationRequests = "verification-requests:"
)

func UserKey(userID string) string   { return PrefixUsers + userID }
func SellerKey(userID string) string { return PrefixSellers + userID }

func ListingKey(listingID string) string { return PrefixListings + listingID }

func ListingBySellerPrefix(sellerID string) string {
	return PrefixListings + "by-seller:" + sellerID + ":"
}

func ListingBySellerKey(sellerID, listingID string) string {
	return ListingBySellerPrefix(sellerID) + listingID
}

func ListingImagePrefix(listingID string) string {
	return PrefixListingImages + listingID + ":"
}

func ListingImageKey(listingID, imageID string) string {
	return ListingImagePrefix(listingID) + imageID
}

func OrderKey(orderID string) string { return PrefixOrders + orderID }

func OrderByBuyerPrefix(buyerID string) string {
	return PrefixOrders + "by-buyer:" + buyerID + ":"
}

func OrderByBuyerKey(buyerID, orderID string) string {
	return OrderByBuyerPrefix(buyerID) + orderID
}

func OrderBySellerPrefix(sellerID string) string {
	return PrefixOrders + "by-seller:" + sellerID + ":"
}

func OrderBySellerKey(sellerID, orderID string) string {
	return OrderBySellerPrefix(sellerID) + orderID
}

func ReviewKey(reviewID string) string { return PrefixReviews + reviewID }

func ReviewBySellerPrefix(sellerID string) string {
	return PrefixReviews + "by-seller:" + sellerID + ":"
}

func ReviewBySellerKey(sellerID, reviewID string) string {
	return ReviewBySellerPrefix(sellerID) + reviewID
}

func ReportKey(reportID string) string { return PrefixReports + reportID }

func VerificationKey(requestID string) string { return PrefixVerificationRequests + requestID }

func VerificationByListingPrefix(listingID string) string {
	return PrefixVerificationRequests + "by-listing:" + listingID + ":"
}

func VerificationByListingKey(listingID, requestID string) string {
	return VerificationByListingPrefix(listingID) + requestID
}

// IsPrimaryKey reports whether key is a primary record directly under
// prefix, as opposed to a pointer record (prefix + "by-…") sharing it.
func IsPrimaryKey(prefix, key string) bool {
	if !strings.HasPrefix(key, prefix) {
		return false
	}
	rest := key[len(prefix):]
	return rest != "" && !strings.Contains(rest, ":")
}
