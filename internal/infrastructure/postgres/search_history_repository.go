package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/internal/domain/repository"
)

type SearchHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewSearchHistoryRepository(pool *pgxpool.Pool) *SearchHistoryRepository {
	return &SearchHistoryRepository{pool: pool}
}

func (r *SearchHistoryRepository) Bump(ctx context.Context, productID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO search_history (product_id, search_count, last_searched)
		VALUES ($1, 1, now())
		ON CONFLICT (product_id)
		DO UPDATE SET search_count = search_history.search_count + 1, last_searched = now()
	`, productID)
	return err
}

func (r *SearchHistoryRepository) TopProductIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id
		FROM search_history
		ORDER BY search_count DESC, last_searched DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *SearchHistoryRepository) ListAll(ctx context.Context) ([]*entity.SearchHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, search_count, last_searched
		FROM search_history
		ORDER BY search_count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entity.SearchHistory
	for rows.Next() {
		h := &entity.SearchHistory{}
		if err := rows.Scan(&h.ID, &h.ProductID, &h.SearchCount, &h.LastSearched); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

var _ repository.SearchHistoryRepository = (*SearchHistoryRepository)(nil)
