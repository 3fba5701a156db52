package locate

import (
	"encoding/json"
	"strings"

	"github.com/croemmich/wpheader/pkg/header"
)

// Artifact is the read-only view shared by Plugin and Theme.
type Artifact interface {
	Kind() header.Kind
	Name() string
	Version() string
	Path() string
	Headers() header.Headers
}

// metadata holds the fields common to both kinds. It is never mutated after
// construction and hands out copies of its header map.
type metadata struct {
	kind    header.Kind
	path    string
	headers header.Headers
}

func newMetadata(kind header.Kind, path string, h header.Headers) (metadata, error) {
	if strings.TrimSpace(h.Value(header.FieldName)) == "" {
		return metadata{}, ErrMissingName
	}
	return metadata{kind: kind, path: path, headers: h.Clone()}, nil
}

func (m metadata) Kind() header.Kind { return m.kind }

// Path is the workspace-relative file the headers were read from.
func (m metadata) Path() string { return m.path }

// Headers returns a copy of every extracted field.
func (m metadata) Headers() header.Headers { return m.headers.Clone() }

// Get returns any field, including extra fields configured beyond the defaults.
func (m metadata) Get(field string) (string, bool) { return m.headers.Get(field) }

func (m metadata) Name() string        { return m.headers.Value(header.FieldName) }
func (m metadata) URI() string         { return m.headers.Value(header.FieldURI) }
func (m metadata) Version() string     { return m.headers.Value(header.FieldVersion) }
func (m metadata) Description() string { return m.headers.Value(header.FieldDescription) }
func (m metadata) Author() string      { return m.headers.Value(header.FieldAuthor) }
func (m metadata) AuthorURI() string   { return m.headers.Value(header.FieldAuthorURI) }
func (m metadata) TextDomain() string  { return m.headers.Value(header.FieldTextDomain) }
func (m metadata) DomainPath() string  { return m.headers.Value(header.FieldDomainPath) }

// document is the serialized form of an artifact.
type document struct {
	Kind    header.Kind       `json:"kind" yaml:"kind"`
	Path    string            `json:"path" yaml:"path"`
	Headers map[string]string `json:"headers" yaml:"headers"`
}

func (m metadata) document() document {
	return document{Kind: m.kind, Path: m.path, Headers: m.headers.Clone()}
}

// MarshalJSON emits {kind, path, headers}.
func (m metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.document())
}

// MarshalYAML emits the same shape as MarshalJSON.
func (m metadata) MarshalYAML() (interface{}, error) {
	return m.document(), nil
}

// Plugin is the metadata of a plugin's main file.
type Plugin struct {
	metadata
}

// NewPlugin wraps headers read from path. It fails with ErrMissingName unless
// the headers carry a non-empty Name.
func NewPlugin(path string, h header.Headers) (*Plugin, error) {
	m, err := newMetadata(header.KindPlugin, path, h)
	if err != nil {
		return nil, err
	}
	return &Plugin{metadata: m}, nil
}

// Network is the raw "Network" header, "true" for network-only plugins.
func (p *Plugin) Network() string { return p.headers.Value(header.FieldNetwork) }

// Theme is the metadata of a theme's stylesheet.
type Theme struct {
	metadata
}

// NewTheme wraps headers read from path. It fails with ErrMissingName unless
// the headers carry a non-empty Name.
func NewTheme(path string, h header.Headers) (*Theme, error) {
	m, err := newMetadata(header.KindTheme, path, h)
	if err != nil {
		return nil, err
	}
	return &Theme{metadata: m}, nil
}

// Template is the parent theme directory for child themes.
func (t *Theme) Template() string { return t.headers.Value(header.FieldTemplate) }

// Status is the raw "Status" header of the theme.
func (t *Theme) Status() string { return t.headers.Value(header.FieldStatus) }

// Tags is the raw comma separated tag list.
func (t *Theme) Tags() string { return t.headers.Value(header.FieldTags) }

// TagList splits Tags on commas, trimming blanks.
func (t *Theme) TagList() []string {
	raw := t.Tags()
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

var (
	_ Artifact = (*Plugin)(nil)
	_ Artifact = (*Theme)(nil)
)
