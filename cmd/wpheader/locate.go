package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/croemmich/wpheader/pkg/header"
	"github.com/croemmich/wpheader/pkg/locate"
	"github.com/croemmich/wpheader/pkg/log"
)

// annotationTakesDir marks commands whose first argument is a workspace directory.
const annotationTakesDir = "wpheader/takes-dir"

func newLocateCmd(a *app, kind header.Kind) *cobra.Command {
	var long string
	switch kind {
	case header.KindPlugin:
		long = heredoc.Doc(`
			Scan every plugin source file in DIR (default ".") in lexical order and
			print the headers of the first one that declares a "Plugin Name".
		`)
	case header.KindTheme:
		long = heredoc.Doc(`
			Read the stylesheet at the root of DIR (default ".") and print its headers
			if it declares a "Theme Name".
		`)
	}

	return &cobra.Command{
		Use:         string(kind) + " [DIR]",
		Short:       fmt.Sprintf("Print the %s header of a workspace", kind),
		Long:        long,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationTakesDir: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.newLocator(workspaceDir(cmd, args))
			if err != nil {
				return err
			}
			artifact, scan, err := l.LocateTrace(cmd.Context(), kind)
			logScan(scan)
			if err != nil {
				return locateError(err)
			}
			return a.writeOutput(cmd, artifact)
		},
	}
}

func newDetectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect [DIR]",
		Short: "Detect whether a workspace is a theme or a plugin and print its header",
		Long: heredoc.Doc(`
			Try the theme stylesheet first, then plugin sources, and print the headers of
			whichever is found. The "kind" field of the output tells which one matched.
		`),
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationTakesDir: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.newLocator(workspaceDir(cmd, args))
			if err != nil {
				return err
			}
			artifact, scan, err := l.DetectTrace(cmd.Context())
			logScan(scan)
			if err != nil {
				return locateError(err)
			}
			log.Debug("Detected artifact", "kind", artifact.Kind(), "path", artifact.Path())
			return a.writeOutput(cmd, artifact)
		},
	}
}

// logScan reports a scan trace at debug level.
func logScan(scan *locate.ScanResult) {
	if scan == nil || !log.IsDebugEnabled() {
		return
	}
	log.Debug("Scan finished",
		"kind", scan.Kind,
		"state", scan.State,
		"candidates", len(scan.Candidates),
		"examined", scan.Examined,
		"match", scan.Match,
		"failures", len(scan.Failures))
}
