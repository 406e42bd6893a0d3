// package client provides HTTP request composition on top of parameterized
// URI templates, with various middleware options.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/karvel/templnet/pkg/client/errors"
	"github.com/karvel/templnet/pkg/client/logger"
	"github.com/karvel/templnet/pkg/client/middleware"
	"github.com/karvel/templnet/pkg/uritemplate"
)

// Client manages HTTP requests with various middleware options. Requests
// built from URI templates resolve against the client's base URL; parsed
// templates are cached on the client so each distinct template string is
// parsed once.
type Client struct {
	middlewareChain *middleware.Chain
	httpClient      *http.Client
	templates       *uritemplate.Cache
	baseURL         *url.URL
	baseURLErr      error
}

// NewClient creates a new Client instance with default settings.
func NewClient(opts ...Option) *Client {
	client := &Client{
		middlewareChain: middleware.NewChain(&logger.NoOpLogger{}),
		httpClient: &http.Client{
			Transport:     http.DefaultTransport,
			CheckRedirect: nil,
			Jar:           nil,
			Timeout:       0,
		},
		templates: uritemplate.NewCache(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the base URL requests resolve against, or nil when the
// client has none configured.
func (c *Client) BaseURL() *url.URL {
	return c.baseURL
}

// Do performs an HTTP request with the specified options.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.middlewareChain.Process(ctx, c.httpClient, req)
}

func (c *Client) setBaseURL(raw string) {
	u, err := url.Parse(raw)
	if err != nil {
		c.baseURLErr = fmt.Errorf("%w: %w", errors.ErrInvalidBaseURL, err)
		return
	}
	if !u.IsAbs() {
		c.baseURLErr = fmt.Errorf("%w: %q is not absolute", errors.ErrInvalidBaseURL, raw)
		return
	}
	c.baseURL = u
	c.baseURLErr = nil
}
