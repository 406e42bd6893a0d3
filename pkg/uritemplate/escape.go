package uritemplate

import "strings"

const upperhex = "0123456789ABCDEF"

// escapePathSegment percent-encodes a resolved value for use inside the
// path portion of a URI. Unreserved characters, sub-delims and the pchar
// extras ':' and '@' pass through, as does '/' so that multi-level values
// keep their structure. '?' and '#' are always encoded; leaving them raw
// would let a value terminate the path early.
func escapePathSegment(s string) string {
	return escape(s, pathSafe)
}

// escapeQueryComponent percent-encodes a query name or value. Only
// unreserved characters pass through, so '&', '=' and friends can never
// split or terminate the pair they appear in.
func escapeQueryComponent(s string) string {
	return escape(s, querySafe)
}

func pathSafe(c byte) bool {
	if querySafe(c) {
		return true
	}
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', ':', '@', '/':
		return true
	}
	return false
}

func querySafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}

// escape percent-encodes every byte of s that safe rejects. Multi-byte
// runes are encoded byte by byte, which yields standard UTF-8
// percent-encoding.
func escape(s string, safe func(byte) bool) string {
	escaped := 0
	for i := 0; i < len(s); i++ {
		if !safe(s[i]) {
			escaped++
		}
	}
	if escaped == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*escaped)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if safe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0F])
	}
	return b.String()
}
