package repository

import (
	"context"

	"github.com/secondchance/marketplace/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	// CreateAndClearCart inserts the order and empties the buyer's cart in
	// one transaction; a failed insert leaves the cart intact.
	CreateAndClearCart(ctx context.Context, o *entity.Order) error
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
