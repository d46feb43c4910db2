package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/sbbtt/next-mall/internal/utils"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	GetQuantity(ctx context.Context, userID uuid.UUID, productID int64) (int, error)
	Insert(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error
	Delete(ctx context.Context, userID uuid.UUID, productID int64) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT product_id, quantity
		FROM carts
		WHERE user_id = $1
		ORDER BY product_id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	items := []models.CartItem{}

	for rows.Next() {
		var item models.CartItem

		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// GetQuantity returns sql.ErrNoRows when the product is not in the cart.
func (r *cartRepository) GetQuantity(ctx context.Context, userID uuid.UUID, productID int64) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT quantity
		FROM carts
		WHERE user_id = $1 AND product_id = $2
	`

	var quantity int

	err := r.DB.QueryRowContext(dbCtx, query, userID, productID).Scan(&quantity)
	if err != nil {
		return 0, err
	}

	return quantity, nil
}

func (r *cartRepository) Insert(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
	`

	_, err := r.DB.ExecContext(dbCtx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to insert cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE carts
		SET quantity = $1
		WHERE user_id = $2 AND product_id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID uuid.UUID, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM carts
		WHERE user_id = $1 AND product_id = $2
	`

	_, err := r.DB.ExecContext(dbCtx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	return nil
}
