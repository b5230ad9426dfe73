package pandascore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public PandaScore REST endpoint
	DefaultBaseURL = "https://api.pandascore.co"
)

// Client is a read-only PandaScore API client
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new PandaScore client with a fixed request timeout
func NewClient(token string, timeout time.Duration) *Client {
	return &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBaseURL overrides the upstream host, e.g. to point at a test server.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(base, "/")
}

// get performs a GET request with the bearer credential and decodes the
// JSON response. Any transport failure or non-2xx status is returned as
// an error; callers decide whether to absorb it.
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	endpoint := c.baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
