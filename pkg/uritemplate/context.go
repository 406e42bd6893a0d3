package uritemplate

import (
	"slices"
	"strings"
)

// evalContext wraps one caller-supplied parameter mapping for the duration
// of a single Populate call. Keys are compared case-insensitively; a key
// that is present with an empty value is distinct from an absent key.
type evalContext struct {
	values map[string]string
}

func newEvalContext(params map[string]string) *evalContext {
	// Fold keys in sorted order so that two caller keys differing only in
	// case resolve to the same winner on every call.
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	values := make(map[string]string, len(params))
	for _, k := range keys {
		values[strings.ToLower(k)] = params[k]
	}
	return &evalContext{values: values}
}

// lookup returns the value bound to name. The second return distinguishes
// "bound to the empty string" from "not bound at all".
func (c *evalContext) lookup(name string) (string, bool) {
	v, ok := c.values[strings.ToLower(name)]
	return v, ok
}
