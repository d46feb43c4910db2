package storeclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbbtt/next-mall/internal/models"
)

type CartAPI struct {
	client *Client
}

// List returns the user's cart. An unauthenticated token yields an empty
// cart, not an error, so anonymous visitors see an empty badge instead of a
// failure state.
func (a CartAPI) List(ctx context.Context, token string) ([]models.CartItem, error) {

	c := a.client

	c.mu.Lock()
	if cached, ok := c.carts[token]; ok {
		view := copyCart(cached)
		c.mu.Unlock()

		return view, nil
	}
	c.mu.Unlock()

	var resp models.CartResponse

	err := c.do(ctx, token, http.MethodGet, "/api/cart", nil, &resp)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return []models.CartItem{}, nil
		}

		return nil, err
	}

	if resp.CartItems == nil {
		resp.CartItems = []models.CartItem{}
	}

	c.mu.Lock()
	c.carts[token] = copyCart(resp.CartItems)
	c.mu.Unlock()

	return resp.CartItems, nil
}

// Add increments the line optimistically before the request settles. On
// failure the previous view is restored; on success the view is invalidated
// so the next List refetches the server state.
func (a CartAPI) Add(ctx context.Context, token string, productID int64, quantity int) error {

	if quantity < 1 {
		quantity = 1
	}

	c := a.client

	prev, had := c.snapshotCart(token)

	if had {
		c.mu.Lock()
		view := c.carts[token]

		found := false
		for i := range view {
			if view[i].ProductID == productID {
				view[i].Quantity += quantity
				found = true

				break
			}
		}

		if !found {
			c.carts[token] = append(view, models.CartItem{ProductID: productID, Quantity: quantity})
		}
		c.mu.Unlock()
	}

	err := c.do(ctx, token, http.MethodPost, "/api/cart",
		models.AddCartItemRequest{ProductID: productID, Quantity: quantity}, nil)
	if err != nil {
		c.restoreCart(token, prev, had)

		return err
	}

	c.invalidateCart(token)

	return nil
}

// Update sets an absolute quantity, clamped to >= 1 to mirror the server.
func (a CartAPI) Update(ctx context.Context, token string, productID int64, quantity int) error {

	if quantity < 1 {
		quantity = 1
	}

	c := a.client

	prev, had := c.snapshotCart(token)

	if had {
		c.mu.Lock()
		view := c.carts[token]
		for i := range view {
			if view[i].ProductID == productID {
				view[i].Quantity = quantity

				break
			}
		}
		c.mu.Unlock()
	}

	err := c.do(ctx, token, http.MethodPatch, "/api/cart",
		models.UpdateCartItemRequest{ProductID: productID, Quantity: quantity}, nil)
	if err != nil {
		c.restoreCart(token, prev, had)

		return err
	}

	c.invalidateCart(token)

	return nil
}

func (a CartAPI) Remove(ctx context.Context, token string, productID int64) error {

	c := a.client

	prev, had := c.snapshotCart(token)

	if had {
		c.mu.Lock()
		view := c.carts[token]
		next := view[:0]
		for _, item := range view {
			if item.ProductID != productID {
				next = append(next, item)
			}
		}
		c.carts[token] = next
		c.mu.Unlock()
	}

	err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/api/cart?productId=%d", productID), nil, nil)
	if err != nil {
		c.restoreCart(token, prev, had)

		return err
	}

	c.invalidateCart(token)

	return nil
}

// Clear removes every line one request at a time. There is no bulk endpoint;
// a failure partway leaves the remaining lines in place.
func (a CartAPI) Clear(ctx context.Context, token string) error {

	items, err := a.List(ctx, token)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := a.Remove(ctx, token, item.ProductID); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) snapshotCart(token string) ([]models.CartItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, ok := c.carts[token]
	if !ok {
		return nil, false
	}

	return copyCart(cached), true
}

func (c *Client) restoreCart(token string, prev []models.CartItem, had bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if had {
		c.carts[token] = prev
	} else {
		delete(c.carts, token)
	}
}

func (c *Client) invalidateCart(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.carts, token)
}

func copyCart(items []models.CartItem) []models.CartItem {
	view := make([]models.CartItem, len(items))
	copy(view, items)

	return view
}
