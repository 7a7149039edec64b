package entity

import "time"

const OrderStatusPending = "Pending"

// OrderItem is an immutable snapshot of a purchased product. Later edits or
// deletion of the source product do not alter historical orders.
type OrderItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	SellerID    string  `json:"seller_id"`
	SellerPhone string  `json:"seller_phone"`
}

// Order is immutable once created.
type Order struct {
	ID         string      `json:"id"`
	BuyerID    string      `json:"buyer_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}
