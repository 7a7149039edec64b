package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/internal/domain/repository"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	cart := &entity.Cart{UserID: userID, Items: []entity.CartItem{}}
	err := r.pool.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cart.ID)
	if err != nil {
		// No cart row yet: equivalent to an empty cart.
		return cart, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, name, price, image_url, seller_id, seller_phone
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY added_at ASC
	`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.Price,
			&it.ImageURL, &it.SellerID, &it.SellerPhone); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, it)
	}
	return cart, rows.Err()
}

func (r *CartRepository) AddItem(ctx context.Context, userID string, item entity.CartItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cartID string
	err = tx.QueryRow(ctx, `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id
	`, userID).Scan(&cartID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, name, price, image_url, seller_id, seller_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, cartID, item.ProductID, item.Name, item.Price, item.ImageURL, item.SellerID, item.SellerPhone)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, itemID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM cart_items
		WHERE id = $1 AND cart_id = (SELECT id FROM carts WHERE user_id = $2)
	`, itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = (SELECT id FROM carts WHERE user_id = $1)
	`, userID)
	return err
}

var _ repository.CartRepository = (*CartRepository)(nil)
