// Package cookie provides middleware that rotates through configured
// cookie sets, applying the next set to each outgoing request.
package cookie

import (
	"context"
	"net/http"
	"sync"

	"github.com/karvel/templnet/pkg/client/logger"
	"github.com/karvel/templnet/pkg/client/middleware"
)

// Middleware manages cookie rotation for HTTP requests.
type Middleware struct {
	cookies [][]*http.Cookie
	current int
	logger  logger.Logger
	mu      sync.Mutex
}

// New creates a new cookie rotation middleware.
func New(cookies [][]*http.Cookie) *Middleware {
	return &Middleware{
		cookies: cookies,
		current: 0,
		logger:  &logger.NoOpLogger{},
	}
}

// Process applies the next cookie set before passing the request to the next middleware.
func (m *Middleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	for _, cookie := range m.nextSet() {
		req.AddCookie(cookie)
	}
	return next(ctx, httpClient, req)
}

// nextSet returns the cookie set to use and advances the rotation.
func (m *Middleware) nextSet() []*http.Cookie {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.cookies) == 0 {
		return nil
	}

	cookies := m.cookies[m.current]
	m.current = (m.current + 1) % len(m.cookies)

	m.logger.WithFields(logger.Int("cookies", len(cookies))).Debug("Using Cookie")
	return cookies
}

// UpdateCookies replaces the cookie list at runtime and restarts the rotation.
func (m *Middleware) UpdateCookies(cookies [][]*http.Cookie) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cookies = cookies
	m.current = 0

	m.logger.WithFields(logger.Int("cookies", len(cookies))).Debug("Cookies updated")
}

// GetCookieCount returns the current number of cookie sets in the list.
func (m *Middleware) GetCookieCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.cookies)
}

// SetLogger sets the logger for the middleware.
func (m *Middleware) SetLogger(l logger.Logger) {
	m.logger = l
}
