package config

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croemmich/wpheader/pkg/header"
)

func writeFieldsFile(t *testing.T, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/fields.yaml", []byte(content), 0o644))
	return fs
}

func TestLoadFieldsFile(t *testing.T) {
	fs := writeFieldsFile(t, `
plugin:
  UpdateURI: Update URI
  RequiresPHP: Requires PHP
theme:
  RequiresWP: Requires at least
`)
	ff, err := LoadFieldsFile(fs, "/cfg/fields.yaml")
	require.NoError(t, err)

	want := []header.Field{
		{Name: "RequiresPHP", Label: "Requires PHP"},
		{Name: "UpdateURI", Label: "Update URI"},
	}
	if diff := cmp.Diff(want, ff.Fields(header.KindPlugin)); diff != "" {
		t.Errorf("plugin fields mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, ff.Fields(header.KindTheme), 1)
}

func TestLoadFieldsFile_TOML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/fields.toml", []byte(`
[plugin]
RequiresPHP = "Requires PHP"

[theme]
RequiresWP = "Requires at least"
`), 0o644))

	ff, err := LoadFieldsFile(fs, "/cfg/fields.toml")
	require.NoError(t, err)
	assert.Equal(t, []header.Field{{Name: "RequiresPHP", Label: "Requires PHP"}}, ff.Fields(header.KindPlugin))
	assert.Equal(t, []header.Field{{Name: "RequiresWP", Label: "Requires at least"}}, ff.Fields(header.KindTheme))

	require.NoError(t, afero.WriteFile(fs, "/cfg/bad.toml", []byte("[widget]\nFoo = \"Foo\"\n"), 0o644))
	_, err = LoadFieldsFile(fs, "/cfg/bad.toml")
	var target *ErrFieldsFileParse
	assert.True(t, errors.As(err, &target))
}

func TestLoadFieldsFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		check   func(t *testing.T, err error)
	}{
		{
			name: "wrong extension",
			path: "/cfg/fields.json",
			check: func(t *testing.T, err error) {
				var target *ErrFieldsFileExtension
				assert.True(t, errors.As(err, &target))
			},
		},
		{
			name: "missing",
			path: "/cfg/other.yaml",
			check: func(t *testing.T, err error) {
				var target *ErrFieldsFileNotExist
				assert.True(t, errors.As(err, &target))
				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
		{
			name:    "unknown key",
			path:    "/cfg/fields.yaml",
			content: "widget:\n  Foo: Foo\n",
			check: func(t *testing.T, err error) {
				var target *ErrFieldsFileParse
				assert.True(t, errors.As(err, &target))
			},
		},
		{
			name:    "not a map",
			path:    "/cfg/fields.yaml",
			content: "plugin: [a, b]\n",
			check: func(t *testing.T, err error) {
				var target *ErrFieldsFileParse
				assert.True(t, errors.As(err, &target))
			},
		},
		{
			name:    "redefines default",
			path:    "/cfg/fields.yaml",
			content: "plugin:\n  version: Plugin Version\n",
			check: func(t *testing.T, err error) {
				var target *ErrInvalidField
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "version", target.Field)
				assert.Contains(t, err.Error(), "redefines a default field")
			},
		},
		{
			name:    "empty label",
			path:    "/cfg/fields.yaml",
			content: "theme:\n  Extra: \"\"\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "label is empty")
			},
		},
		{
			name:    "label with colon",
			path:    "/cfg/fields.yaml",
			content: "theme:\n  Extra: \"Extra: thing\"\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "must not contain")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.content != "" {
				require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))
			}
			ff, err := LoadFieldsFile(fs, tt.path)
			require.Error(t, err)
			assert.Nil(t, ff)
			tt.check(t, err)
		})
	}
}

func TestFieldsFile_Apply(t *testing.T) {
	fs := writeFieldsFile(t, "plugin:\n  RequiresPHP: Requires PHP\n")
	ff, err := LoadFieldsFile(fs, "/cfg/fields.yaml")
	require.NoError(t, err)

	base := header.Patterns(header.KindPlugin)
	set, err := ff.Apply(header.KindPlugin, base)
	require.NoError(t, err)
	assert.Equal(t, base.Len()+1, set.Len())
	_, ok := set.Lookup("RequiresPHP")
	assert.True(t, ok)

	h := header.Extract([]byte("/*\nPlugin Name: P\nRequires PHP: 7.4\n*/"), set)
	assert.Equal(t, "7.4", h.Value("RequiresPHP"))

	themeSet, err := ff.Apply(header.KindTheme, header.Patterns(header.KindTheme))
	require.NoError(t, err)
	assert.Same(t, header.Patterns(header.KindTheme), themeSet)

	var none *FieldsFile
	same, err := none.Apply(header.KindPlugin, base)
	require.NoError(t, err)
	assert.Same(t, base, same)
}
