// Package header provides middleware that stamps a fixed set of headers,
// and optionally a generated request ID, onto every outgoing request.
package header

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/karvel/templnet/pkg/client/logger"
	"github.com/karvel/templnet/pkg/client/middleware"
)

// RequestIDHeader is the header the middleware stamps generated request
// IDs into.
const RequestIDHeader = "X-Request-Id"

// Middleware adds headers to HTTP requests.
type Middleware struct {
	headers        http.Header
	stampRequestID bool
	logger         logger.Logger
}

// New creates a middleware that adds the given headers to every request.
func New(headers http.Header) *Middleware {
	return &Middleware{
		headers: headers,
		logger:  &logger.NoOpLogger{},
	}
}

// NewWithRequestID is like New but additionally stamps a fresh UUID into
// the X-Request-Id header of every request that does not carry one yet.
func NewWithRequestID(headers http.Header) *Middleware {
	m := New(headers)
	m.stampRequestID = true
	return m
}

// Process applies headers to the request before passing it to the next middleware.
func (m *Middleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	for key, values := range m.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if m.stampRequestID && req.Header.Get(RequestIDHeader) == "" {
		id := uuid.NewString()
		req.Header.Set(RequestIDHeader, id)
		m.logger.WithFields(logger.String("request_id", id)).Debug("Stamped request ID")
	}

	return next(ctx, httpClient, req)
}

// SetLogger sets the logger for the middleware.
func (m *Middleware) SetLogger(l logger.Logger) {
	m.logger = l
}
