package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/internal/domain/repository"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoOrderItems    = errors.New("order has no items")
	ErrIncompleteItems = errors.New("order item missing seller info")
)

// OrderService turns carts into orders. Order lines are copies of the cart
// snapshots, so a purchase record survives product deletion.
type OrderService struct {
	Orders repository.OrderRepository
	Carts  repository.CartRepository
	Logger *logrus.Logger
}

// Checkout creates an order from the buyer's current cart and clears the
// cart in the same transaction. A failed insert leaves the cart untouched.
func (s *OrderService) Checkout(ctx context.Context, buyerID string) (*entity.Order, error) {
	cart, err := s.Carts.GetByUserID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &entity.Order{
		BuyerID:    buyerID,
		TotalPrice: cart.Total(),
		Status:     entity.OrderStatusPending,
	}
	for _, it := range cart.Items {
		order.Items = append(order.Items, entity.OrderItem{
			Name:        it.Name,
			Price:       it.Price,
			ImageURL:    it.ImageURL,
			SellerID:    it.SellerID,
			SellerPhone: it.SellerPhone,
		})
	}

	if err := s.Orders.CreateAndClearCart(ctx, order); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"order_id": order.ID,
			"buyer_id": buyerID,
			"items":    len(order.Items),
		}).Info("order placed")
	}
	return order, nil
}

// Create records an order from items the client already holds. Lines are
// stored as given; they never point back at live products.
func (s *OrderService) Create(ctx context.Context, buyerID string, items []entity.OrderItem, totalPrice float64) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, ErrNoOrderItems
	}
	for _, it := range items {
		if it.SellerID == "" || it.SellerPhone == "" {
			return nil, ErrIncompleteItems
		}
	}

	order := &entity.Order{
		BuyerID:    buyerID,
		Items:      items,
		TotalPrice: totalPrice,
		Status:     entity.OrderStatusPending,
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListMine returns the buyer's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return s.Orders.ListByBuyer(ctx, buyerID)
}
