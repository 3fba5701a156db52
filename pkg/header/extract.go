package header

import (
	"regexp"
	"strings"
)

// closingMarker matches a comment or PHP close tag and everything after it.
var closingMarker = regexp.MustCompile(`(?s)\s*(?:\*/|\?>).*`)

// Headers is an Extracted Header Map. Only fields whose pattern matched are present.
type Headers map[string]string

// Get returns the value for field. The lookup falls back to a case-insensitive
// match so "status" and "Status" resolve to the same entry.
func (h Headers) Get(field string) (string, bool) {
	if v, ok := h[field]; ok {
		return v, true
	}
	for k, v := range h {
		if strings.EqualFold(k, field) {
			return v, true
		}
	}
	return "", false
}

// Value is Get without the presence flag.
func (h Headers) Value(field string) string {
	v, _ := h.Get(field)
	return v
}

// Has reports whether field is present.
func (h Headers) Has(field string) bool {
	_, ok := h.Get(field)
	return ok
}

// Fields returns the present field names, sorted.
func (h Headers) Fields() []string {
	return SortedFields(map[string]string(h))
}

// Clone returns an independent copy.
func (h Headers) Clone() Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// lineEndings rewrites CRLF and CR to LF so (?m) anchors see every line.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Clean truncates a raw value at the first */ or ?> (and any whitespace before
// it) and trims the result.
func Clean(s string) string {
	return strings.TrimSpace(closingMarker.ReplaceAllString(s, ""))
}

// Extract tests every pattern of set against buf independently and returns the
// cleaned first match of each. A buffer with no matches yields an empty map.
// CRLF and lone CR line endings are treated as line breaks.
func Extract(buf []byte, set *PatternSet) Headers {
	headers := make(Headers)
	if set == nil {
		return headers
	}
	text := lineEndings.Replace(string(buf))
	for _, p := range set.patterns {
		m := p.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		headers[p.Field] = Clean(m[1])
	}
	return headers
}
