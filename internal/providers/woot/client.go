package woot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bargain-buddy/internal/httpx"
)

const (
	DefaultBaseURL = "https://api.woot.com/2/events.json"

	// Select limits the events payload to the fields we read.
	Select    = "offers.title,offers.items,offers.soldout"
	EventType = "daily"
)

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

// EventsURL builds the events endpoint for one woot site.
func (c *Client) EventsURL(site string) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("woot: invalid base url: %w", err)
	}

	q := u.Query()
	q.Set("select", Select)
	q.Set("key", c.APIKey)
	q.Set("site", site)
	q.Set("eventType", EventType)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchEvents returns the raw daily events payload for site.
func (c *Client) FetchEvents(ctx context.Context, site string) ([]byte, error) {
	u, err := c.EventsURL(site)
	if err != nil {
		return nil, err
	}

	body, err := httpx.Fetch(ctx, c.HTTP, u)
	if err != nil {
		return body, fmt.Errorf("woot: fetch events site=%s: %w", site, err)
	}
	return body, nil
}
