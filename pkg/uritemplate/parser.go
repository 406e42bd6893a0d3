package uritemplate

import "strings"

// The grammar is deliberately small: a path portion of '/'-delimited
// segments, an optional query portion of '&'-delimited name=value pairs,
// and {name} as the only placeholder form. It is not RFC 6570.
//
// Runs of slashes in the path collapse, so "/a//b" is the same template
// as "/a/b"; only a trailing slash is meaningful, marking the final
// segment as a directory.

// splitTemplate divides a template at the first '?' that sits outside a
// parameter placeholder. hasQuery distinguishes "no query portion" from an
// empty one.
func splitTemplate(raw string) (path, query string, hasQuery bool) {
	depth := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '?':
			if depth == 0 {
				return raw[:i], raw[i+1:], true
			}
		}
	}
	return raw, "", false
}

func parsePath(raw, path string) ([]pathSegment, error) {
	var segs []pathSegment

	pos := 0
	for {
		end := len(path)
		last := true
		if next := strings.IndexByte(path[pos:], '/'); next >= 0 {
			end = pos + next
			last = false
		}

		piece := path[pos:end]
		switch {
		case piece != "":
			seg, err := classifyPathSegment(raw, piece, pos)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		case last && len(segs) > 0:
			// A trailing '/' marks the preceding segment as a directory
			// instead of opening a new segment.
			segs[len(segs)-1].directory = true
		}

		if last {
			return segs, nil
		}
		pos = end + 1
	}
}

func classifyPathSegment(raw, piece string, pos int) (pathSegment, error) {
	if !strings.ContainsAny(piece, "{}") {
		return pathSegment{value: piece}, nil
	}
	name, err := placeholderName(raw, piece, pos)
	if err != nil {
		return pathSegment{}, err
	}
	return pathSegment{value: name, param: true}, nil
}

// placeholderName unwraps a {name} placeholder that must occupy the whole
// piece. It is only called for pieces that contain a brace.
func placeholderName(raw, piece string, pos int) (string, error) {
	if len(piece) < 2 || piece[0] != '{' {
		return "", &SyntaxError{Template: raw, Pos: pos, Reason: "malformed parameter placeholder"}
	}
	if piece[len(piece)-1] != '}' {
		return "", &SyntaxError{Template: raw, Pos: pos, Reason: "unterminated parameter placeholder"}
	}
	name := piece[1 : len(piece)-1]
	if strings.TrimSpace(name) == "" {
		return "", &SyntaxError{Template: raw, Pos: pos, Reason: "empty parameter name"}
	}
	if strings.ContainsAny(name, "{}") {
		return "", &SyntaxError{Template: raw, Pos: pos, Reason: "nested parameter placeholder"}
	}
	return name, nil
}

func parseQuery(raw, query string, offset int) ([]querySegment, error) {
	var segs []querySegment

	pos := 0
	for {
		end := len(query)
		last := true
		if next := strings.IndexByte(query[pos:], '&'); next >= 0 {
			end = pos + next
			last = false
		}

		seg, err := parseQueryPair(raw, query[pos:end], offset+pos)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)

		if last {
			return segs, nil
		}
		pos = end + 1
	}
}

func parseQueryPair(raw, pair string, pos int) (querySegment, error) {
	name := pair
	value := ""
	valuePos := -1
	if eq := strings.IndexByte(pair, '='); eq >= 0 {
		name = pair[:eq]
		value = pair[eq+1:]
		valuePos = pos + eq + 1
	}

	if strings.ContainsAny(name, "{}") {
		unwrapped, err := placeholderName(raw, name, pos)
		if err != nil {
			return querySegment{}, err
		}
		name = unwrapped
	}
	if strings.TrimSpace(name) == "" {
		return querySegment{}, &SyntaxError{Template: raw, Pos: pos, Reason: "empty query parameter name"}
	}

	// Shorthand form: "?name" binds the parameter called name to the query
	// key of the same name.
	if valuePos < 0 {
		return querySegment{name: name, value: name, param: true}, nil
	}

	if strings.ContainsAny(value, "{}") {
		param, err := placeholderName(raw, value, valuePos)
		if err != nil {
			return querySegment{}, err
		}
		return querySegment{name: name, value: param, param: true}, nil
	}
	return querySegment{name: name, value: value}, nil
}
