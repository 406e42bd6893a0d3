package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/karvel/templnet/pkg/client/errors"
)

// Request builds requests using method chaining. A Request is immutable:
// every configuration method returns a derived Request and never touches
// its receiver, so a partially configured Request can be shared and forked
// freely.
type Request struct {
	client   *Client
	method   string
	url      string
	template string
	params   map[string]string
	header   http.Header
	query    Query
	body     []byte
}

// NewRequest creates a new Request with default options.
func (c *Client) NewRequest() *Request {
	return &Request{
		client: c,
		method: http.MethodGet,
	}
}

// clone copies the request so a setter can change one field without
// mutating the original.
func (rb *Request) clone() *Request {
	r2 := *rb
	r2.params = maps.Clone(rb.params)
	r2.header = rb.header.Clone()
	r2.query = rb.query.Clone()
	return &r2
}

// Method returns a request with the HTTP method set.
func (rb *Request) Method(method string) *Request {
	r2 := rb.clone()
	r2.method = method
	return r2
}

// URL returns a request targeting a verbatim URL. It clears any template
// set earlier.
func (rb *Request) URL(url string) *Request {
	r2 := rb.clone()
	r2.url = url
	r2.template = ""
	return r2
}

// URLTemplate returns a request targeting a URI template, to be resolved
// with the parameters set via Param or Params against the client's base
// URL. It clears any verbatim URL set earlier.
func (rb *Request) URLTemplate(template string) *Request {
	r2 := rb.clone()
	r2.template = template
	r2.url = ""
	return r2
}

// Param returns a request with one template parameter bound.
func (rb *Request) Param(key, value string) *Request {
	r2 := rb.clone()
	if r2.params == nil {
		r2.params = make(map[string]string)
	}
	r2.params[key] = value
	return r2
}

// Params returns a request with all given template parameters bound.
func (rb *Request) Params(params map[string]string) *Request {
	r2 := rb.clone()
	if r2.params == nil {
		r2.params = make(map[string]string, len(params))
	}
	maps.Copy(r2.params, params)
	return r2
}

// Query returns a request with a query parameter added.
func (rb *Request) Query(key, value string) *Request {
	r2 := rb.clone()
	if r2.query == nil {
		r2.query = make(Query)
	}
	r2.query.Add(key, value)
	return r2
}

// Header returns a request with a header set.
func (rb *Request) Header(key, value string) *Request {
	r2 := rb.clone()
	if r2.header == nil {
		r2.header = make(http.Header)
	}
	r2.header.Set(key, value)
	return r2
}

// Body returns a request with the body set.
func (rb *Request) Body(body []byte) *Request {
	r2 := rb.clone()
	r2.body = body
	return r2
}

// Build returns the final http.Request for execution.
func (rb *Request) Build(ctx context.Context) (*http.Request, error) {
	target, err := rb.resolveTarget()
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if rb.body != nil {
		bodyReader = bytes.NewReader(rb.body)
	}

	req, err := http.NewRequestWithContext(ctx, rb.method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRequestCreation, err)
	}

	// Query values added on the builder are merged over whatever the
	// target already carries; on a key collision the builder wins.
	if len(rb.query) > 0 {
		req.URL.RawQuery = mergeRawQuery(req.URL.RawQuery, rb.query)
	}

	for key, values := range rb.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	return req, nil
}

// mergeRawQuery appends extra onto raw without re-encoding raw: pairs a
// template produced keep their escaping and order. Existing pairs whose
// key collides with an extra key are dropped so the builder value wins.
func mergeRawQuery(raw string, extra Query) string {
	var b strings.Builder
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, _, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if _, ok := extra[key]; ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(pair)
	}
	if encoded := extra.Encode(); encoded != "" {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(encoded)
	}
	return b.String()
}

// resolveTarget produces the URL string the request is sent to, expanding
// the template against the client's base URL when one is set.
func (rb *Request) resolveTarget() (string, error) {
	if rb.template == "" {
		if rb.url == "" {
			return "", errors.ErrNoTarget
		}
		return rb.url, nil
	}

	if rb.client.baseURLErr != nil {
		return "", rb.client.baseURLErr
	}

	tpl, err := rb.client.templates.Parse(rb.template)
	if err != nil {
		return "", err
	}

	params := rb.params
	if params == nil {
		params = map[string]string{}
	}

	u, err := tpl.Populate(rb.client.baseURL, params)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Do executes the request and returns the raw http.Response.
func (rb *Request) Do(ctx context.Context) (*http.Response, error) {
	req, err := rb.Build(ctx)
	if err != nil {
		return nil, err
	}
	return rb.client.Do(ctx, req)
}
