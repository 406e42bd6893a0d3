package client

import (
	"net/http"
	"time"

	"github.com/karvel/templnet/pkg/client/logger"
	"github.com/karvel/templnet/pkg/client/middleware"
)

// Option is a function type that modifies the Client configuration.
type Option func(*Client)

// WithMiddleware adds or updates the middleware for the Client.
func WithMiddleware(middleware middleware.Middleware) Option {
	return func(c *Client) {
		c.middlewareChain.Then(middleware)
	}
}

// WithTimeout sets the timeout for the Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTransport sets the underlying transport for the Client.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = transport
	}
}

// WithLogger sets the logger for the Client and its middleware.
func WithLogger(logger logger.Logger) Option {
	return func(c *Client) {
		c.middlewareChain.SetLogger(logger)
	}
}

// WithBaseURL sets the absolute base URL that template-built requests
// resolve against. A URL that fails to parse or is not absolute is
// reported when a request is built, not here.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		c.setBaseURL(raw)
	}
}
