package models

// Wishlist entries have set semantics: membership only, no quantity.
type WishlistResponse struct {
	ProductIDs []int64 `json:"productIds"`
}

type AddWishlistItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}
