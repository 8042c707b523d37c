package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Resolver maps a client IP to a city name for device metadata. Lookups are
// best-effort: callers treat an error or empty city as "unknown" and must
// never let it influence verification logic.
type Resolver interface {
	CityForIP(ctx context.Context, ip string) (string, error)
}

type client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Resolver backed by the ip-api JSON endpoint.
func NewClient(baseURL string) Resolver {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *client) CityForIP(ctx context.Context, ip string) (string, error) {
	u := fmt.Sprintf("%s/json/%s?fields=status,city", c.baseURL, url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geoip lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geoip lookup: status %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
		City   string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geoip decode: %w", err)
	}
	if body.Status != "success" {
		return "", nil
	}
	return body.City, nil
}
