// Package header builds the labeled-field patterns used to read WordPress plugin and
// theme file headers and extracts field values from a file prefix.
//
// A header line looks like
//
//	 * Plugin Name: My Great Plugin
//
// optionally decorated with spaces, tabs and any of the characters / * # @ before
// the label. Labels are matched case-insensitively and the rest of the line is the
// raw value.
package header

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Kind is the artifact kind a pattern set belongs to.
type Kind string

const (
	KindPlugin Kind = "plugin"
	KindTheme  Kind = "theme"
)

// Kinds lists every supported kind in detection order.
var Kinds = []Kind{KindTheme, KindPlugin}

// ParseKind converts a user supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindPlugin:
		return KindPlugin, nil
	case KindTheme:
		return KindTheme, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Logical field names. These are the keys of an extracted Headers map.
const (
	FieldName        = "Name"
	FieldURI         = "URI"
	FieldDescription = "Description"
	FieldAuthor      = "Author"
	FieldAuthorURI   = "AuthorURI"
	FieldVersion     = "Version"
	FieldTextDomain  = "TextDomain"
	FieldDomainPath  = "DomainPath"
	FieldNetwork     = "Network"
	FieldTemplate    = "Template"
	FieldStatus      = "Status"
	FieldTags        = "Tags"
)

// Field pairs a logical field name with the label text that appears in the file.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

var baseFields = []Field{
	{Name: FieldDescription, Label: "Description"},
	{Name: FieldAuthor, Label: "Author"},
	{Name: FieldAuthorURI, Label: "Author URI"},
	{Name: FieldVersion, Label: "Version"},
	{Name: FieldTextDomain, Label: "Text Domain"},
	{Name: FieldDomainPath, Label: "Domain Path"},
}

var kindFields = map[Kind][]Field{
	KindPlugin: {
		{Name: FieldName, Label: "Plugin Name"},
		{Name: FieldURI, Label: "Plugin URI"},
		{Name: FieldNetwork, Label: "Network"},
	},
	KindTheme: {
		{Name: FieldName, Label: "Theme Name"},
		{Name: FieldURI, Label: "Theme URI"},
		{Name: FieldTemplate, Label: "Template"},
		{Name: FieldStatus, Label: "Status"},
		{Name: FieldTags, Label: "Tags"},
	},
}

// linePrefix is the decoration allowed before a label.
const linePrefix = `^[ \t/*#@]*`

// FieldPattern is a compiled matcher for one header field.
type FieldPattern struct {
	Field   string
	Label   string
	Pattern *regexp.Regexp
}

// NewFieldPattern compiles the line matcher for label. The pattern is multi-line
// and case-insensitive; capture group 1 is the raw value.
func NewFieldPattern(field, label string) (FieldPattern, error) {
	if strings.TrimSpace(field) == "" || strings.TrimSpace(label) == "" {
		return FieldPattern{}, fmt.Errorf("%w: field %q label %q", ErrMalformedPattern, field, label)
	}
	re, err := regexp.Compile(`(?im)` + linePrefix + regexp.QuoteMeta(label) + `:(.*)$`)
	if err != nil {
		return FieldPattern{}, fmt.Errorf("%w: %v", ErrMalformedPattern, err)
	}
	return FieldPattern{Field: field, Label: label, Pattern: re}, nil
}

// PatternSet is an immutable, ordered Field Pattern Map.
type PatternSet struct {
	kind     Kind
	patterns []FieldPattern
	index    map[string]int
}

func newPatternSet(kind Kind, fields []Field) (*PatternSet, error) {
	set := &PatternSet{
		kind:     kind,
		patterns: make([]FieldPattern, 0, len(fields)),
		index:    make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, dup := set.index[strings.ToLower(f.Name)]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrMalformedPattern, f.Name)
		}
		fp, err := NewFieldPattern(f.Name, f.Label)
		if err != nil {
			return nil, err
		}
		set.index[strings.ToLower(f.Name)] = len(set.patterns)
		set.patterns = append(set.patterns, fp)
	}
	return set, nil
}

// Kind returns the artifact kind the set was built for.
func (s *PatternSet) Kind() Kind { return s.kind }

// Len returns the number of fields in the set.
func (s *PatternSet) Len() int { return len(s.patterns) }

// Fields returns the field names in registry order.
func (s *PatternSet) Fields() []string {
	names := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		names[i] = p.Field
	}
	return names
}

// Patterns returns a copy of the ordered patterns.
func (s *PatternSet) Patterns() []FieldPattern {
	out := make([]FieldPattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Lookup finds the pattern for a field name, ignoring case.
func (s *PatternSet) Lookup(field string) (FieldPattern, bool) {
	i, ok := s.index[strings.ToLower(field)]
	if !ok {
		return FieldPattern{}, false
	}
	return s.patterns[i], true
}

// With returns a new set holding the receiver's fields followed by extra.
// Redefining an existing field is an error.
func (s *PatternSet) With(extra ...Field) (*PatternSet, error) {
	fields := make([]Field, 0, len(s.patterns)+len(extra))
	for _, p := range s.patterns {
		fields = append(fields, Field{Name: p.Field, Label: p.Label})
	}
	fields = append(fields, extra...)
	return newPatternSet(s.kind, fields)
}

// DefaultFields returns the base fields followed by the kind-specific fields.
func DefaultFields(kind Kind) ([]Field, error) {
	specific, ok := kindFields[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	fields := make([]Field, 0, len(baseFields)+len(specific))
	fields = append(fields, baseFields...)
	fields = append(fields, specific...)
	return fields, nil
}

// DefaultFieldPatterns builds a fresh pattern set for kind. It does no I/O.
func DefaultFieldPatterns(kind Kind) (*PatternSet, error) {
	fields, err := DefaultFields(kind)
	if err != nil {
		return nil, err
	}
	return newPatternSet(kind, fields)
}

var cached = map[Kind]func() *PatternSet{
	KindPlugin: sync.OnceValue(func() *PatternSet { return mustDefault(KindPlugin) }),
	KindTheme:  sync.OnceValue(func() *PatternSet { return mustDefault(KindTheme) }),
}

func mustDefault(kind Kind) *PatternSet {
	set, err := DefaultFieldPatterns(kind)
	if err != nil {
		panic(fmt.Sprintf("header: building %s patterns: %v", kind, err))
	}
	return set
}

// Patterns returns the process-wide default set for kind, compiled on first use.
// It panics for an unknown kind.
func Patterns(kind Kind) *PatternSet {
	get, ok := cached[kind]
	if !ok {
		panic(fmt.Sprintf("header: unknown kind %q", kind))
	}
	return get()
}

// SortedFields returns the keys of m sorted alphabetically.
func SortedFields[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
