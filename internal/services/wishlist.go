package service

import (
	"context"

	"github.com/google/uuid"
	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/models"
	repository "github.com/sbbtt/next-mall/internal/repositories"
)

type WishlistService interface {
	GetWishlist(ctx context.Context, userID uuid.UUID) (*models.WishlistResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, productID int64) error
	RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error
}

type wishlistService struct {
	repo repository.WishlistRepository
}

func NewWishlistService(repo repository.WishlistRepository) WishlistService {
	return &wishlistService{repo: repo}
}

func (s *wishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) (*models.WishlistResponse, error) {

	ids, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch wishlist").WithError(err)
	}

	return &models.WishlistResponse{ProductIDs: ids}, nil
}

// AddItem is idempotent: the wishlist is a set, re-adding a product succeeds
// without a second row.
func (s *wishlistService) AddItem(ctx context.Context, userID uuid.UUID, productID int64) error {

	if err := s.repo.Insert(ctx, userID, productID); err != nil {
		return appErrors.DatabaseError("Failed to update wishlist").WithError(err)
	}

	return nil
}

func (s *wishlistService) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error {

	if err := s.repo.Delete(ctx, userID, productID); err != nil {
		return appErrors.DatabaseError("Failed to update wishlist").WithError(err)
	}

	return nil
}
