package meh

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bargain-buddy/internal/httpx"
)

const DefaultBaseURL = "https://api.meh.com/1/current.json"

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// CurrentURL builds the feed endpoint: base URL plus the api key.
func (c *Client) CurrentURL() (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("meh: invalid base url: %w", err)
	}

	q := u.Query()
	q.Set("apikey", c.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchCurrent returns the raw current.json payload.
func (c *Client) FetchCurrent(ctx context.Context) ([]byte, error) {
	u, err := c.CurrentURL()
	if err != nil {
		return nil, err
	}

	body, err := httpx.Fetch(ctx, c.HTTP, u)
	if err != nil {
		return body, fmt.Errorf("meh: fetch current deal: %w", err)
	}
	return body, nil
}
