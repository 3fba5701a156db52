// Package main implements the wpheader command-line interface.
//
// wpheader reads the file header block of a WordPress plugin or theme in a
// workspace directory and prints its metadata as YAML or JSON:
//   - plugin: find the main plugin file and print its headers
//   - theme: read style.css at the workspace root
//   - detect: try theme first, then plugin
//   - fields: list the header fields and labels that are recognized
//   - version: print the build version
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/croemmich/wpheader/pkg/config"
	"github.com/croemmich/wpheader/pkg/exitcodes"
	"github.com/croemmich/wpheader/pkg/header"
	"github.com/croemmich/wpheader/pkg/locate"
	"github.com/croemmich/wpheader/pkg/log"
	"github.com/croemmich/wpheader/pkg/workspace"
)

// AppFs is the filesystem used for workspaces, config files and output.
var AppFs = afero.NewOsFs()

// SetFs replaces AppFs and returns a function that restores it. Used by tests.
func SetFs(newFs afero.Fs) func() {
	oldFs := AppFs
	AppFs = newFs
	return func() { AppFs = oldFs }
}

// app holds state resolved once per invocation by the root pre-run hook.
type app struct {
	v          *viper.Viper
	cfgFile    string
	outputFile string
	cfg        *config.Config
	fields     *config.FieldsFile
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "wpheader",
		Short: "Read WordPress plugin and theme file headers",
		Long: heredoc.Doc(`
			wpheader finds the file that declares a WordPress plugin or theme in a
			directory and prints the metadata from its header comment (name, version,
			author, text domain and so on).

			Plugins are found by scanning every .php file in lexical order; the first
			one with a "Plugin Name:" header wins. Themes are read from style.css at the
			directory root.
		`),
		Example: heredoc.Doc(`
			$ wpheader plugin ./wp-content/plugins/akismet
			$ wpheader theme ./wp-content/themes/twentytwentyfour -o json
			$ wpheader detect . --exclude vendor --exclude node_modules
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return exitcodes.Wrap(exitcodes.ExitMissingRequiredFlag, errors.New("a subcommand is required"))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, flagConfig, "", "config file (default is ./"+config.FileName+" in the workspace, then $HOME/"+config.FileName+")")
	flags.String(config.KeyLogLevel, "info", "set log level (debug, info, warn, error)")
	flags.StringSlice(config.KeyExtensions, []string{".php"}, "plugin source file extensions")
	flags.StringSlice(config.KeyExclude, nil, "glob patterns of workspace paths to skip (e.g. vendor, **/tests)")
	flags.String(config.KeyPrefixSize, "8KB", "bytes read from the start of each candidate file (e.g. 8192, 8KB)")
	flags.String(config.KeyStylesheet, locate.DefaultStylesheet, "theme stylesheet at the workspace root")
	flags.String(config.KeyFieldsFile, "", "YAML file declaring extra header fields")
	flags.StringP(config.KeyOutputFormat, "o", config.FormatYAML, "output format (yaml or json)")
	flags.StringVar(&a.outputFile, flagOutputFile, "", "write output to this file instead of stdout")

	rootCmd.AddCommand(newLocateCmd(a, header.KindPlugin))
	rootCmd.AddCommand(newLocateCmd(a, header.KindTheme))
	rootCmd.AddCommand(newDetectCmd(a))
	rootCmd.AddCommand(newFieldsCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup binds flags into viper, reads the config file and applies the log level.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == flagConfig || f.Name == flagOutputFile || f.Name == "help" {
			return
		}
		if err := a.v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return exitcodes.Wrap(exitcodes.ExitInternalError, fmt.Errorf("failed to bind flags: %w", bindErr))
	}

	dir := workspaceDir(cmd, args)
	used, err := config.ReadFile(a.v, AppFs, dir, a.cfgFile)
	if err != nil {
		return exitcodes.Wrap(exitcodes.ExitInputConfigurationError, err)
	}

	cfg, err := config.FromViper(a.v)
	if err != nil {
		return exitcodes.Wrap(exitcodes.ExitInputConfigurationError, err)
	}
	a.cfg = cfg
	log.SetLevel(cfg.Level())
	if used != "" {
		log.Debug("Using config file", "path", used)
	}

	if cfg.FieldsFile != "" {
		ff, err := config.LoadFieldsFile(AppFs, cfg.FieldsFile)
		if err != nil {
			return exitcodes.Wrap(exitcodes.ExitInputConfigurationError, err)
		}
		a.fields = ff
	}
	return nil
}

// workspaceDir is the positional directory argument for commands that take
// one, or the current directory.
func workspaceDir(cmd *cobra.Command, args []string) string {
	if cmd.Annotations[annotationTakesDir] == "true" && len(args) > 0 {
		return args[0]
	}
	return "."
}

// newLocator builds the workspace and locator for dir from the resolved config.
func (a *app) newLocator(dir string) (*locate.Locator, error) {
	isDir, err := afero.DirExists(AppFs, dir)
	if err != nil {
		return nil, exitcodes.Wrap(exitcodes.ExitIOError, fmt.Errorf("failed to stat workspace %s: %w", dir, err))
	}
	if !isDir {
		return nil, exitcodes.Wrap(exitcodes.ExitIOError, fmt.Errorf("workspace %s is not a directory", dir))
	}

	ws, err := workspace.New(AppFs, dir, workspace.WithExclude(a.cfg.Exclude...))
	if err != nil {
		return nil, exitcodes.Wrap(exitcodes.ExitInputConfigurationError, err)
	}

	opts := []locate.Option{
		locate.WithExtensions(a.cfg.Extensions...),
		locate.WithPrefixSize(a.cfg.PrefixSize),
		locate.WithStylesheet(a.cfg.Stylesheet),
	}
	for _, kind := range header.Kinds {
		set, err := a.patterns(kind)
		if err != nil {
			return nil, exitcodes.Wrap(exitcodes.ExitInputConfigurationError, err)
		}
		opts = append(opts, locate.WithPatterns(kind, set))
	}
	return locate.NewLocator(ws, opts...), nil
}

// patterns returns the default set for kind extended by the fields file.
func (a *app) patterns(kind header.Kind) (*header.PatternSet, error) {
	return a.fields.Apply(kind, header.Patterns(kind))
}

// locateError maps locator errors onto exit codes.
func locateError(err error) error {
	switch {
	case locate.IsNotFound(err):
		return exitcodes.Wrap(exitcodes.ExitArtifactNotFound, err)
	case locate.IsIOFailure(err):
		return exitcodes.Wrap(exitcodes.ExitIOError, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return exitcodes.Wrap(exitcodes.ExitGeneralRuntimeError, err)
	default:
		return exitcodes.Wrap(exitcodes.ExitInternalError, err)
	}
}
