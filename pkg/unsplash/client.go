// Package unsplash wraps the Unsplash photo-search API. The admin product
// flow uses it to find a cover image when the seller does not supply one.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrMissingAccessKey = errors.New("unsplash access key is not configured")

type Client interface {
	// SearchImage returns the URL of the first landscape photo matching the
	// query, or "" when nothing matched.
	SearchImage(ctx context.Context, query string) (string, error)
}

type client struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(accessKey, baseURL string) Client {
	return &client{
		accessKey:  accessKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

func (c *client) SearchImage(ctx context.Context, query string) (string, error) {

	if c.accessKey == "" {
		return "", ErrMissingAccessKey
	}

	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=1&orientation=landscape",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call unsplash: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash returned status %d", resp.StatusCode)
	}

	var parsed searchResponse

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Results) == 0 {
		return "", nil
	}

	return parsed.Results[0].URLs.Regular, nil
}
