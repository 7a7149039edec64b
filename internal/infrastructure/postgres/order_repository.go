package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) insertOrder(ctx context.Context, tx pgx.Tx, o *entity.Order) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (buyer_id, total_price, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, o.BuyerID, o.TotalPrice, o.Status).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return err
	}
	for i := range o.Items {
		it := &o.Items[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, name, price, image_url, seller_id, seller_phone)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, o.ID, it.Name, it.Price, it.ImageURL, it.SellerID, it.SellerPhone).Scan(&it.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.insertOrder(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) CreateAndClearCart(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.insertOrder(ctx, tx, o); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = (SELECT id FROM carts WHERE user_id = $1)
	`, o.BuyerID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) loadItems(ctx context.Context, orders []*entity.Order) error {
	for _, o := range orders {
		rows, err := r.pool.Query(ctx, `
			SELECT id, name, price, image_url, seller_id, seller_phone
			FROM order_items
			WHERE order_id = $1
		`, o.ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var it entity.OrderItem
			if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.ImageURL,
				&it.SellerID, &it.SellerPhone); err != nil {
				rows.Close()
				return err
			}
			o.Items = append(o.Items, it)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) collect(ctx context.Context, rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var out []*entity.Order
	for rows.Next() {
		o := &entity.Order{}
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, buyer_id, total_price, status, created_at
		FROM orders
		WHERE buyer_id = $1
		ORDER BY created_at DESC
	`, buyerID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *OrderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, buyer_id, total_price, status, created_at
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&n)
	return n, err
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
