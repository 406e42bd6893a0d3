// Package uritemplate parses parameterized URI templates and substitutes
// parameter values into them to produce well-formed, escaped URIs.
//
// A template is parsed once and reused:
//
//	tpl := uritemplate.MustParse("/v1/users/{id}?fields={fields}")
//	u, err := tpl.Populate(base, map[string]string{"id": "7"})
//
// Path parameters that have no bound value drop out of the path together
// with their separator; query parameters that have no bound value drop out
// of the query string entirely. Interior empty path segments collapse at
// parse time, so "/a//b" and "/a/b" are the same template; a trailing
// slash instead marks the last segment as a directory.
package uritemplate

import (
	"fmt"
	"net/url"
	"strings"
)

// Template is a parsed, immutable URI template. A Template is safe for
// concurrent use; Populate never mutates the parsed segments.
type Template struct {
	raw   string
	path  []pathSegment
	query []querySegment
}

// Parse parses a template string into a reusable Template.
//
// A blank template fails with ErrInvalidArgument. Grammar violations fail
// with a *SyntaxError, which satisfies errors.Is(err, ErrTemplateSyntax).
// A template whose path portion yields no segments is a grammar violation;
// every usable Template has at least one path segment.
func Parse(raw string) (*Template, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: template must not be blank", ErrInvalidArgument)
	}

	pathPart, queryPart, hasQuery := splitTemplate(raw)

	path, err := parsePath(raw, pathPart)
	if err != nil {
		return nil, err
	}
	if len(path) == 0 {
		return nil, &SyntaxError{Template: raw, Pos: 0, Reason: "template has no path segments"}
	}

	var query []querySegment
	if hasQuery && queryPart != "" {
		query, err = parseQuery(raw, queryPart, len(pathPart)+1)
		if err != nil {
			return nil, err
		}
	}

	return &Template{raw: raw, path: path, query: query}, nil
}

// MustParse is like Parse but panics on error. It is intended for
// hard-coded templates.
func MustParse(raw string) *Template {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Raw returns the template string the Template was parsed from.
func (t *Template) Raw() string {
	return t.raw
}

func (t *Template) String() string {
	return t.raw
}

// Parameters returns the names of all parameters the template references,
// in template order, without duplicates.
func (t *Template) Parameters() []string {
	var names []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, s := range t.path {
		if s.param {
			add(s.value)
		}
	}
	for _, s := range t.query {
		if s.param {
			add(s.value)
		}
	}
	return names
}

// Populate substitutes params into the template and returns the resulting
// URI. base may be nil, in which case the result is relative; a non-nil
// base must be absolute and contributes its scheme and authority verbatim.
//
// params must not be nil; pass an empty map when there is nothing to bind.
// Keys are matched case-insensitively. A key bound to the empty string
// emits an empty component, while an absent key omits the component
// altogether. When every path segment is omitted the path falls back to
// a single "/".
func (t *Template) Populate(base *url.URL, params map[string]string) (*url.URL, error) {
	if base != nil && !base.IsAbs() {
		return nil, fmt.Errorf("%w: base URI %q is not absolute", ErrInvalidArgument, base)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: parameter mapping must not be nil", ErrInvalidArgument)
	}

	ctx := newEvalContext(params)

	var path strings.Builder
	emitted := 0
	for _, seg := range t.path {
		v, ok := seg.resolve(ctx)
		if !ok {
			continue
		}
		path.WriteByte('/')
		path.WriteString(escapePathSegment(v))
		if seg.directory {
			path.WriteByte('/')
		}
		emitted++
	}
	if emitted == 0 {
		path.WriteByte('/')
	}

	var query strings.Builder
	for i, seg := range t.query {
		if t.shadowed(i) {
			continue
		}
		v, ok := seg.resolve(ctx)
		if !ok {
			continue
		}
		if query.Len() > 0 {
			query.WriteByte('&')
		}
		query.WriteString(escapeQueryComponent(seg.name))
		query.WriteByte('=')
		query.WriteString(escapeQueryComponent(v))
	}

	if base == nil {
		return relativeURL(path.String(), query.String())
	}

	var b strings.Builder
	writeAuthority(&b, base)
	b.WriteString(path.String())
	// The '?' appears only when at least one pair actually resolved.
	if query.Len() > 0 {
		b.WriteByte('?')
		b.WriteString(query.String())
	}
	u, err := url.Parse(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: assembled URI %q failed to re-parse: %w", ErrEngineFault, b.String(), err)
	}
	return u, nil
}

// relativeURL assembles a result with no authority. The URL is built
// field by field rather than re-parsed from a string: a path whose first
// segment emitted empty starts with "//", which url.Parse would read
// back as a scheme-relative authority.
func relativeURL(path, rawQuery string) (*url.URL, error) {
	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return nil, fmt.Errorf("%w: assembled path %q failed to unescape: %w", ErrEngineFault, path, err)
	}
	u := &url.URL{Path: unescaped, RawQuery: rawQuery}
	if unescaped != path {
		u.RawPath = path
	}
	return u, nil
}

// shadowed reports whether a later query segment reuses the same query
// parameter name; the last registered segment for a name wins.
func (t *Template) shadowed(i int) bool {
	for j := i + 1; j < len(t.query); j++ {
		if t.query[j].name == t.query[i].name {
			return true
		}
	}
	return false
}

func writeAuthority(b *strings.Builder, base *url.URL) {
	b.WriteString(base.Scheme)
	b.WriteString("://")
	if base.User != nil {
		b.WriteString(base.User.String())
		b.WriteByte('@')
	}
	b.WriteString(base.Host)
}
