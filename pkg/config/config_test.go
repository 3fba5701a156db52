package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croemmich/wpheader/pkg/log"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, []string{".php"}, c.Extensions)
	assert.Equal(t, 8192, c.PrefixSize)
	assert.Equal(t, "style.css", c.Stylesheet)
	assert.Equal(t, FormatYAML, c.OutputFormat)
	assert.Equal(t, log.LevelInfo, c.Level())
}

func TestFromViper_Defaults(t *testing.T) {
	c, err := FromViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, Default().Extensions, c.Extensions)
	assert.Empty(t, c.Exclude)
	assert.Equal(t, Default().PrefixSize, c.PrefixSize)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("WPHEADER_EXTENSIONS", "PHP,inc")
	t.Setenv("WPHEADER_EXCLUDE", "vendor, node_modules")
	t.Setenv("WPHEADER_PREFIX_SIZE", "1024")
	t.Setenv("WPHEADER_OUTPUT_FORMAT", "JSON")
	t.Setenv("WPHEADER_LOG_LEVEL", "debug")

	c, err := FromViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, []string{".php", ".inc"}, c.Extensions)
	assert.Equal(t, []string{"vendor", "node_modules"}, c.Exclude)
	assert.Equal(t, 1024, c.PrefixSize)
	assert.Equal(t, FormatJSON, c.OutputFormat)
	assert.Equal(t, log.LevelDebug, c.Level())
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "8192", want: 8192},
		{in: " 512 ", want: 512},
		{in: "8KB", want: 8192},
		{in: "1 kb", want: 1024},
		{in: "1MB", want: 1 << 20},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSize("lots")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFromViper_HumanPrefixSize(t *testing.T) {
	t.Setenv("WPHEADER_PREFIX_SIZE", "4KB")
	c, err := FromViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, 4096, c.PrefixSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "zero prefix", mutate: func(c *Config) { c.PrefixSize = 0 }, errMsg: "prefix-size"},
		{name: "no extensions", mutate: func(c *Config) { c.Extensions = []string{" ", ""} }, errMsg: "extension"},
		{name: "bad format", mutate: func(c *Config) { c.OutputFormat = "xml" }, errMsg: "output-format"},
		{name: "nested stylesheet", mutate: func(c *Config) { c.Stylesheet = "css/style.css" }, errMsg: "stylesheet"},
		{name: "empty stylesheet", mutate: func(c *Config) { c.Stylesheet = "" }, errMsg: "stylesheet"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, errMsg: "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	t.Run("workspace file wins", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/ws/.wpheader.yaml", []byte("prefix-size: 2048\nexclude: [vendor]\n"), 0o644))
		require.NoError(t, afero.WriteFile(fs, "/home/tester/.wpheader.yaml", []byte("prefix-size: 10\n"), 0o644))

		v := NewViper()
		used, err := ReadFile(v, fs, "/ws", "")
		require.NoError(t, err)
		assert.Equal(t, "/ws/.wpheader.yaml", used)

		c, err := FromViper(v)
		require.NoError(t, err)
		assert.Equal(t, 2048, c.PrefixSize)
		assert.Equal(t, []string{"vendor"}, c.Exclude)
	})

	t.Run("home fallback", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/tester/.wpheader.yaml", []byte("output-format: json\n"), 0o644))

		v := NewViper()
		used, err := ReadFile(v, fs, "/ws", "")
		require.NoError(t, err)
		assert.Equal(t, "/home/tester/.wpheader.yaml", used)
		assert.Equal(t, FormatJSON, v.GetString(KeyOutputFormat))
	})

	t.Run("none found", func(t *testing.T) {
		used, err := ReadFile(NewViper(), afero.NewMemMapFs(), "/ws", "")
		require.NoError(t, err)
		assert.Empty(t, used)
	})

	t.Run("explicit missing", func(t *testing.T) {
		_, err := ReadFile(NewViper(), afero.NewMemMapFs(), "/ws", "/etc/missing.yaml")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/ws/.wpheader.yaml", []byte("prefix-size: [\n"), 0o644))
		_, err := ReadFile(NewViper(), fs, "/ws", "")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
