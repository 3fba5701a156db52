// Package config resolves scan and output settings from defaults, an optional
// .wpheader.yaml file, WPHEADER_* environment variables and command flags,
// all through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/inhies/go-bytesize"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/croemmich/wpheader/pkg/log"
	"github.com/croemmich/wpheader/pkg/workspace"
)

// Viper keys. Flag names use the same spelling.
const (
	KeyExtensions   = "extensions"
	KeyExclude      = "exclude"
	KeyPrefixSize   = "prefix-size"
	KeyStylesheet   = "stylesheet"
	KeyOutputFormat = "output-format"
	KeyFieldsFile   = "fields-file"
	KeyLogLevel     = "log-level"
)

const (
	// EnvPrefix is prepended to upper-cased keys, with - replaced by _.
	EnvPrefix = "WPHEADER"
	// FileName is the config file looked up in the workspace, then $HOME.
	FileName = ".wpheader.yaml"

	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config is the resolved configuration for one run.
type Config struct {
	Extensions   []string
	Exclude      []string
	PrefixSize   int
	Stylesheet   string
	OutputFormat string
	FieldsFile   string
	LogLevel     string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Extensions:   []string{".php"},
		PrefixSize:   workspace.DefaultPrefixSize,
		Stylesheet:   "style.css",
		OutputFormat: FormatYAML,
		LogLevel:     "info",
	}
}

// NewViper returns a viper instance with defaults and environment binding set up.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyExtensions, d.Extensions)
	v.SetDefault(KeyExclude, d.Exclude)
	v.SetDefault(KeyPrefixSize, d.PrefixSize)
	v.SetDefault(KeyStylesheet, d.Stylesheet)
	v.SetDefault(KeyOutputFormat, d.OutputFormat)
	v.SetDefault(KeyFieldsFile, d.FieldsFile)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads a config file into v. An explicit path must exist. Otherwise
// FileName is looked up in workspaceDir and then the home directory; finding
// none is not an error. It returns the file used, or "".
func ReadFile(v *viper.Viper, fs afero.Fs, workspaceDir, explicit string) (string, error) {
	v.SetFs(fs)
	v.SetConfigType("yaml")

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("%w: failed to read config file %s: %v", ErrInvalidConfig, explicit, err)
		}
		return explicit, nil
	}

	candidates := []string{filepath.Join(workspaceDir, FileName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}
	for _, path := range candidates {
		exists, err := afero.Exists(fs, path)
		if err != nil || !exists {
			continue
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("%w: failed to read config file %s: %v", ErrInvalidConfig, path, err)
		}
		log.Debug("Loaded config file", "path", path)
		return path, nil
	}
	return "", nil
}

// FromViper resolves and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	prefixSize, err := ParseSize(v.GetString(KeyPrefixSize))
	if err != nil {
		return nil, err
	}
	c := &Config{
		Extensions:   splitList(v.GetStringSlice(KeyExtensions)),
		Exclude:      splitList(v.GetStringSlice(KeyExclude)),
		PrefixSize:   prefixSize,
		Stylesheet:   strings.TrimSpace(v.GetString(KeyStylesheet)),
		OutputFormat: strings.ToLower(strings.TrimSpace(v.GetString(KeyOutputFormat))),
		FieldsFile:   strings.TrimSpace(v.GetString(KeyFieldsFile)),
		LogLevel:     strings.TrimSpace(v.GetString(KeyLogLevel)),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.Extensions = workspace.NormalizeExtensions(c.Extensions)
	return c, nil
}

// Validate checks value ranges. It does not touch the filesystem.
func (c *Config) Validate() error {
	if c.PrefixSize <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, KeyPrefixSize, c.PrefixSize)
	}
	if len(workspace.NormalizeExtensions(c.Extensions)) == 0 {
		return fmt.Errorf("%w: at least one plugin extension is required", ErrInvalidConfig)
	}
	switch c.OutputFormat {
	case FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("%w: %s must be %s or %s, got %q", ErrInvalidConfig, KeyOutputFormat, FormatYAML, FormatJSON, c.OutputFormat)
	}
	if c.Stylesheet == "" || strings.ContainsAny(c.Stylesheet, `/\`) {
		return fmt.Errorf("%w: %s must be a file name at the workspace root, got %q", ErrInvalidConfig, KeyStylesheet, c.Stylesheet)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() log.Level {
	if c.LogLevel == "" {
		return log.LevelInfo
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.LevelInfo
	}
	return level
}

// ParseSize accepts a plain byte count or a size with a binary unit such as
// "8KB" or "1 MB".
func ParseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	size, err := bytesize.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidConfig, KeyPrefixSize, s, err)
	}
	return int(size), nil
}

// splitList flattens comma separated entries, which is how list values
// arrive from environment variables.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
