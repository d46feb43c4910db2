// Package storeclient is a Go client for the storefront API. Reads are
// served from a per-user cached view; mutations update that view
// optimistically, roll back on failure and invalidate it on success so the
// next read refetches.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sbbtt/next-mall/internal/models"
)

// ErrUnauthenticated is returned by mutations attempted without a valid
// token. Reads never return it: an unauthenticated list is just empty.
var ErrUnauthenticated = errors.New("storeclient: authentication required")

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client is safe for concurrent use. Views are keyed by bearer token, so
// switching users never leaks one user's cart into another's view.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.Mutex
	carts     map[string][]models.CartItem
	wishlists map[string][]int64
}

func New(baseURL string, opts ...Option) *Client {

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		carts:      make(map[string][]models.CartItem),
		wishlists:  make(map[string][]int64),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Cart() CartAPI {
	return CartAPI{client: c}
}

func (c *Client) Wishlist() WishlistAPI {
	return WishlistAPI{client: c}
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do runs one API call and decodes the envelope's data into dest (when dest
// is non-nil). A 401 maps to ErrUnauthenticated.
func (c *Client) do(ctx context.Context, token, method, path string, payload, dest any) error {

	var body io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("storeclient: encode request: %w", err)
		}

		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("storeclient: build request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storeclient: %s %s: %w", method, path, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("storeclient: read response: %w", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("storeclient: decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		if envelope.Error != nil {
			return fmt.Errorf("storeclient: %s %s: %s (%s)", method, path, envelope.Error.Message, envelope.Error.Code)
		}

		return fmt.Errorf("storeclient: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if dest != nil {
		if err := json.Unmarshal(envelope.Data, dest); err != nil {
			return fmt.Errorf("storeclient: decode data: %w", err)
		}
	}

	return nil
}
