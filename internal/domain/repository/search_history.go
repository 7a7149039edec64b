package repository

import (
	"context"

	"github.com/secondchance/marketplace/internal/domain/entity"
)

type SearchHistoryRepository interface {
	// Bump increments the search count for a product, inserting on first hit.
	Bump(ctx context.Context, productID string) error
	TopProductIDs(ctx context.Context, limit int) ([]string, error)
	ListAll(ctx context.Context) ([]*entity.SearchHistory, error)
}
