package models

// CartItem is one row of a user's cart. Quantity is always >= 1; removal is
// a delete, never a zero quantity.
type CartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CartResponse struct {
	CartItems []CartItem `json:"cartItems"`
}

type AddCartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateCartItemRequest carries no minimum on Quantity on purpose: the
// service clamps anything below 1 up to 1.
type UpdateCartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"`
}
