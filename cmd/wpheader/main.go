package main

import (
	"fmt"
	"os"

	"github.com/croemmich/wpheader/pkg/exitcodes"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command tree and maps the error to an exit code.
func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitcodes.ExitSuccess
	}
	code, ok := exitcodes.IsExitCodeError(err)
	if !ok {
		// cobra argument and flag errors
		code = exitcodes.ExitInputConfigurationError
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return code
}
