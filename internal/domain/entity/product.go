package entity

import "time"

// Homepage categories mirrored by the storefront sections.
var Categories = []string{
	"Phones",
	"TVs",
	"Electronics",
	"Fashion",
	"Furnitures",
	"Home-Comforts",
	"Kitchen",
	"Transport",
	"Personal-Care",
}

// Product is a seller listing. SellerPhone is denormalized onto the listing
// so carts and orders can snapshot it without a join.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	SellerID    string    `json:"seller_id"`
	SellerPhone string    `json:"seller_phone"`
	CreatedAt   time.Time `json:"created_at"`
}
