package uritemplate

// pathSegment is one '/'-delimited unit of a template's path portion.
// A literal segment emits its fixed text; a parameter segment emits the
// value bound to its name, or nothing at all when the name is unbound.
type pathSegment struct {
	value     string // literal text, or the parameter name when param is set
	param     bool
	directory bool // emit a trailing '/' after the resolved value
}

// resolve returns the text this segment contributes and whether it
// contributes at all. A parameter segment with no bound value resolves to
// absent, which omits the segment and its separator from the output.
func (s pathSegment) resolve(ctx *evalContext) (string, bool) {
	if !s.param {
		return s.value, true
	}
	return ctx.lookup(s.value)
}

// querySegment is one name=value unit of a template's query portion.
// The name is fixed at parse time; the value is either fixed too or looked
// up in the evaluation context.
type querySegment struct {
	name  string
	value string // fixed value, or the parameter name when param is set
	param bool
}

// resolve returns the value for this query parameter and whether the pair
// should appear in the query string at all.
func (s querySegment) resolve(ctx *evalContext) (string, bool) {
	if !s.param {
		return s.value, true
	}
	return ctx.lookup(s.value)
}
