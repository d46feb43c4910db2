package storeclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/sbbtt/next-mall/internal/models"
)

type WishlistAPI struct {
	client *Client
}

// List mirrors CartAPI.List: anonymous users get an empty wishlist.
func (a WishlistAPI) List(ctx context.Context, token string) ([]int64, error) {

	c := a.client

	c.mu.Lock()
	if cached, ok := c.wishlists[token]; ok {
		view := slices.Clone(cached)
		c.mu.Unlock()

		return view, nil
	}
	c.mu.Unlock()

	var resp models.WishlistResponse

	err := c.do(ctx, token, http.MethodGet, "/api/wishlist", nil, &resp)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return []int64{}, nil
		}

		return nil, err
	}

	if resp.ProductIDs == nil {
		resp.ProductIDs = []int64{}
	}

	c.mu.Lock()
	c.wishlists[token] = slices.Clone(resp.ProductIDs)
	c.mu.Unlock()

	return resp.ProductIDs, nil
}

// Add has set semantics: re-adding a product is a no-op on the view.
func (a WishlistAPI) Add(ctx context.Context, token string, productID int64) error {

	c := a.client

	prev, had := c.snapshotWishlist(token)

	if had {
		c.mu.Lock()
		if !slices.Contains(c.wishlists[token], productID) {
			c.wishlists[token] = append(c.wishlists[token], productID)
		}
		c.mu.Unlock()
	}

	err := c.do(ctx, token, http.MethodPost, "/api/wishlist",
		models.AddWishlistItemRequest{ProductID: productID}, nil)
	if err != nil {
		c.restoreWishlist(token, prev, had)

		return err
	}

	c.invalidateWishlist(token)

	return nil
}

func (a WishlistAPI) Remove(ctx context.Context, token string, productID int64) error {

	c := a.client

	prev, had := c.snapshotWishlist(token)

	if had {
		c.mu.Lock()
		c.wishlists[token] = slices.DeleteFunc(c.wishlists[token], func(id int64) bool {
			return id == productID
		})
		c.mu.Unlock()
	}

	err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/api/wishlist?productId=%d", productID), nil, nil)
	if err != nil {
		c.restoreWishlist(token, prev, had)

		return err
	}

	c.invalidateWishlist(token)

	return nil
}

// Clear issues one delete per entry, same trade-off as CartAPI.Clear.
func (a WishlistAPI) Clear(ctx context.Context, token string) error {

	ids, err := a.List(ctx, token)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := a.Remove(ctx, token, id); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) snapshotWishlist(token string) ([]int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, ok := c.wishlists[token]
	if !ok {
		return nil, false
	}

	return slices.Clone(cached), true
}

func (c *Client) restoreWishlist(token string, prev []int64, had bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if had {
		c.wishlists[token] = prev
	} else {
		delete(c.wishlists, token)
	}
}

func (c *Client) invalidateWishlist(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.wishlists, token)
}
