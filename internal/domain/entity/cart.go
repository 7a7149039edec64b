package entity

// CartItem is a denormalized copy of a product at add-to-cart time plus the
// seller contact the buyer needs at checkout. Duplicates by product id are
// allowed; the guest-side UI deduplicates, the server does not.
type CartItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	SellerID    string  `json:"seller_id"`
	SellerPhone string  `json:"seller_phone"`
}

// Cart holds the server-side cart for one authenticated user. One cart per
// user id; created lazily on first add.
type Cart struct {
	ID     string     `json:"id"`
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// Total sums the item prices.
func (c *Cart) Total() float64 {
	var t float64
	for _, it := range c.Items {
		t += it.Price
	}
	return t
}
