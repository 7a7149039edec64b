package repository

import (
	"context"

	"github.com/secondchance/marketplace/internal/domain/entity"
)

// ProductFilter narrows List; zero values mean "no constraint".
type ProductFilter struct {
	Category     string
	PriceMin     float64
	PriceMax     float64
	Alphabetical bool
	Limit        int
	Offset       int
}

type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
	// ListByIDs preserves the order of ids for hits that exist.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
