package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/models"
	repository "github.com/sbbtt/next-mall/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartItemRequest) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return &models.CartResponse{CartItems: items}, nil
}

// AddItem increments the quantity of a line that is already in the cart and
// inserts a new line otherwise. A request without a quantity adds one unit.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartItem, error) {

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	existing, err := s.repo.GetQuantity(ctx, userID, req.ProductID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		if err := s.repo.Insert(ctx, userID, req.ProductID, quantity); err != nil {
			return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		return &models.CartItem{ProductID: req.ProductID, Quantity: quantity}, nil
	}

	quantity += existing

	if err := s.repo.UpdateQuantity(ctx, userID, req.ProductID, quantity); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return &models.CartItem{ProductID: req.ProductID, Quantity: quantity}, nil
}

// UpdateQuantity sets an absolute quantity. Zero and negative values clamp to
// one; removal is an explicit delete, never a side effect of an update.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartItemRequest) (*models.CartItem, error) {

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if err := s.repo.UpdateQuantity(ctx, userID, req.ProductID, quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Item not found in the cart").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return &models.CartItem{ProductID: req.ProductID, Quantity: quantity}, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error {

	if err := s.repo.Delete(ctx, userID, productID); err != nil {
		return appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return nil
}
