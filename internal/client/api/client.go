// Package api is the HTTP client for the Credor backend. It owns request
// plumbing, error decoding, and the wire-to-model mapping; it holds no
// session state. Operations that require authentication take the bearer
// token explicitly, so the session manager and the accessors stay free of
// import cycles.
package api

import (
	"net/http"
	"time"

	"github.com/credor-app/credor/internal/logging"
)

const defaultTimeout = 15 * time.Second

// Client talks to the Credor REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (e.g. for tests or
// custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger installs a logger for request diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a Client rooted at baseURL (no trailing slash required).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
