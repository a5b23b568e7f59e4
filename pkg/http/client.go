// Package http wraps net/http with the defaults used for fetching the newsletter feed.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ClientConfig represents HTTP client configuration
type ClientConfig struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultConfig returns default HTTP client configuration
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Timeout:   30 * time.Second,
		UserAgent: "newsletter-forge/1.0",
		Headers:   make(map[string]string),
	}
}

// Client is a thin HTTP client that applies the configured headers to every request.
// Failed requests are returned as-is; the caller decides what a failure means.
type Client struct {
	client *http.Client
	config *ClientConfig
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	return &Client{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// GetWithContext performs an HTTP GET request with context
func (c *Client) GetWithContext(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	return c.Do(req)
}

// Do performs an HTTP request after applying the default headers
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	for key, value := range c.config.Headers {
		req.Header.Set(key, value)
	}

	return c.client.Do(req)
}
