package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbbtt/next-mall/internal/utils"
)

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]int64, error)
	Exists(ctx context.Context, userID uuid.UUID, productID int64) (bool, error)
	Insert(ctx context.Context, userID uuid.UUID, productID int64) error
	Delete(ctx context.Context, userID uuid.UUID, productID int64) error
}

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepo(db *sql.DB) WishlistRepository {
	return &wishlistRepository{DB: db}
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT product_id
		FROM wishlists
		WHERE user_id = $1
		ORDER BY product_id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	productIDs := []int64{}

	for rows.Next() {
		var productID int64

		if err := rows.Scan(&productID); err != nil {
			return nil, err
		}

		productIDs = append(productIDs, productID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return productIDs, nil
}

func (r *wishlistRepository) Exists(ctx context.Context, userID uuid.UUID, productID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT EXISTS (
			SELECT 1 FROM wishlists WHERE user_id = $1 AND product_id = $2
		)
	`

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, query, userID, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("querying database: %w", err)
	}

	return exists, nil
}

func (r *wishlistRepository) Insert(ctx context.Context, userID uuid.UUID, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.DB.ExecContext(dbCtx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to insert wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepository) Delete(ctx context.Context, userID uuid.UUID, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM wishlists
		WHERE user_id = $1 AND product_id = $2
	`

	_, err := r.DB.ExecContext(dbCtx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	return nil
}
