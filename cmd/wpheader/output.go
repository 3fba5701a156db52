package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/croemmich/wpheader/pkg/config"
	"github.com/croemmich/wpheader/pkg/exitcodes"
	"github.com/croemmich/wpheader/pkg/log"
)

// writeOutput marshals v in the configured format and writes it to
// --output-file or the command's stdout.
func (a *app) writeOutput(cmd *cobra.Command, v interface{}) error {
	var (
		output []byte
		err    error
	)
	switch a.cfg.OutputFormat {
	case config.FormatJSON:
		output, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return exitcodes.Wrap(exitcodes.ExitGeneralRuntimeError, fmt.Errorf("failed to marshal output to JSON: %w", err))
		}
		output = append(output, '\n')
	default:
		output, err = yaml.Marshal(v)
		if err != nil {
			return exitcodes.Wrap(exitcodes.ExitGeneralRuntimeError, fmt.Errorf("failed to marshal output to YAML: %w", err))
		}
	}

	if a.outputFile != "" {
		if err := afero.WriteFile(AppFs, a.outputFile, output, outputFilePermission); err != nil {
			return exitcodes.Wrap(exitcodes.ExitIOError, fmt.Errorf("failed to write output to file: %w", err))
		}
		log.Infof("Output written to %s", a.outputFile)
		return nil
	}

	if _, err := cmd.OutOrStdout().Write(output); err != nil {
		return exitcodes.Wrap(exitcodes.ExitIOError, fmt.Errorf("failed to write output: %w", err))
	}
	return nil
}
