package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"

	"github.com/croemmich/wpheader/pkg/header"
	"github.com/croemmich/wpheader/pkg/log"
)

// FieldsFile declares header fields beyond the WordPress defaults, keyed by
// logical field name with the label that appears in files. YAML:
//
//	plugin:
//	  RequiresPHP: Requires PHP
//	  UpdateURI: Update URI
//	theme:
//	  RequiresWP: Requires at least
//
// or the same shape in TOML:
//
//	[plugin]
//	RequiresPHP = "Requires PHP"
type FieldsFile struct {
	Plugin map[string]string `json:"plugin,omitempty" toml:"plugin,omitempty"`
	Theme  map[string]string `json:"theme,omitempty" toml:"theme,omitempty"`

	path string
}

// LoadFieldsFile reads and validates a fields file. Unknown top-level keys,
// blank names or labels, labels containing ':' and redefinitions of default
// fields are rejected.
func LoadFieldsFile(fs afero.Fs, path string) (*FieldsFile, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".toml":
	default:
		return nil, WrapFieldsFileExtension(path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WrapFieldsFileNotExist(path, err)
		}
		return nil, WrapFieldsFileRead(path, err)
	}

	var ff FieldsFile
	if err := decodeFields(ext, data, &ff); err != nil {
		return nil, WrapFieldsFileParse(path, err)
	}
	ff.path = path

	for _, kind := range header.Kinds {
		if err := ff.validate(kind); err != nil {
			return nil, err
		}
	}
	log.Debug("Loaded fields file", "path", path, "plugin", len(ff.Plugin), "theme", len(ff.Theme))
	return &ff, nil
}

// decodeFields rejects unknown top-level keys in either format.
func decodeFields(ext string, data []byte, ff *FieldsFile) error {
	if ext == ".toml" {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(ff)
	}
	return yaml.UnmarshalStrict(data, ff)
}

func (f *FieldsFile) entries(kind header.Kind) map[string]string {
	switch kind {
	case header.KindPlugin:
		return f.Plugin
	case header.KindTheme:
		return f.Theme
	default:
		return nil
	}
}

func (f *FieldsFile) validate(kind header.Kind) error {
	defaults := header.Patterns(kind)
	for name, label := range f.entries(kind) {
		invalid := func(reason string) error {
			return &ErrInvalidField{Path: f.path, Kind: string(kind), Field: name, Reason: reason}
		}
		switch {
		case strings.TrimSpace(name) == "":
			return invalid("field name is empty")
		case strings.TrimSpace(label) == "":
			return invalid("label is empty")
		case strings.ContainsAny(label, ":\r\n"):
			return invalid("label must not contain ':' or line breaks")
		}
		if _, exists := defaults.Lookup(name); exists {
			return invalid("redefines a default field")
		}
	}
	return nil
}

// Fields returns the extra fields for kind sorted by name.
func (f *FieldsFile) Fields(kind header.Kind) []header.Field {
	if f == nil {
		return nil
	}
	entries := f.entries(kind)
	out := make([]header.Field, 0, len(entries))
	for name, label := range entries {
		out = append(out, header.Field{Name: strings.TrimSpace(name), Label: strings.TrimSpace(label)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Apply extends base with the extra fields for kind. With nothing to add it
// returns base unchanged.
func (f *FieldsFile) Apply(kind header.Kind, base *header.PatternSet) (*header.PatternSet, error) {
	extra := f.Fields(kind)
	if len(extra) == 0 {
		return base, nil
	}
	return base.With(extra...)
}
