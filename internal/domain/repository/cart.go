package repository

import (
	"context"

	"github.com/secondchance/marketplace/internal/domain/entity"
)

type CartRepository interface {
	// GetByUserID returns an empty cart (not ErrNotFound) when the user has
	// never added an item.
	GetByUserID(ctx context.Context, userID string) (*entity.Cart, error)
	// AddItem creates the cart lazily on first add. No de-duplication.
	AddItem(ctx context.Context, userID string, item entity.CartItem) error
	// RemoveItem returns ErrNotFound when the item is not in the user's cart.
	RemoveItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}
