package entity

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var categories = []Category{
	{ID: "electronics", Name: "Electronics", Icon: "📱"},
	{ID: "fashion", Name: "Fashion & Clothing", Icon: "👕"},
	{ID: "home", Name: "Home & Garden", Icon: "🏠"},
	{ID: "vehicles", Name: "Vehicles", Icon: "🚗"},
	{ID: "property", Name: "Property", Icon: "🏢"},
	{ID: "services", Name: "Services", Icon: "🔧"},
	{ID: "food", Name: "Food & Beverages", Icon: "🍔"},
	{ID: "sports", Name: "Sports & Outdoors", Icon: "⚽"},
	{ID: "books", Name: "Books & Media", Icon: "📚"},
	{ID: "beauty", Name: "Beauty & Health", Icon: "💄"},
	{ID: "toys", Name: "Toys & Games", Icon: "🎮"},
	{ID: "other", Name: "Other", Icon: "📦"},
}

// Categories returns a copy of the fixed category list.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func ValidCategory(id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
