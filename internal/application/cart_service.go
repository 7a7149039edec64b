package application

import (
	"context"
	"errors"

	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/internal/domain/repository"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartService reconciles the client-side cart with the server copy. Items
// are snapshots taken at add time, so later product edits or deletions do
// not mutate a cart.
type CartService struct {
	Carts    repository.CartRepository
	Products repository.ProductRepository
}

func (s *CartService) Get(ctx context.Context, userID string) (*entity.Cart, error) {
	return s.Carts.GetByUserID(ctx, userID)
}

// Add snapshots the product into the user's cart. The same product may be
// added more than once; each add is its own line item.
func (s *CartService) Add(ctx context.Context, userID, productID string) (*entity.Cart, error) {
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	item := entity.CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		SellerID:    p.SellerID,
		SellerPhone: p.SellerPhone,
	}
	if err := s.Carts.AddItem(ctx, userID, item); err != nil {
		return nil, err
	}
	return s.Carts.GetByUserID(ctx, userID)
}

// Remove deletes a single line item from the user's cart.
func (s *CartService) Remove(ctx context.Context, userID, itemID string) (*entity.Cart, error) {
	if err := s.Carts.RemoveItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return s.Carts.GetByUserID(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.Carts.Clear(ctx, userID)
}
