// Package exitcodes defines the process exit codes of the wpheader CLI.
// Codes are grouped in ranges:
//
//	0:     Success
//	1-9:   Input/configuration errors and the not-found result
//	20-29: Runtime errors (e.g., I/O failures)
//	30-39: Internal errors
package exitcodes

import (
	"errors"
	"fmt"
)

// Exit code constants organized by category
const (
	// Success (0)
	ExitSuccess = 0

	// Input/Configuration Errors (1-9)
	ExitMissingRequiredFlag     = 1 // Required argument or flag not provided
	ExitInputConfigurationError = 2 // Invalid flag, config file or fields file
	ExitUnknownKind             = 3 // Artifact kind is neither plugin nor theme
	ExitArtifactNotFound        = 4 // No file in the workspace carries a Name header

	// Runtime Errors (20-29)
	ExitGeneralRuntimeError = 20 // General runtime/system error
	ExitIOError             = 21 // Workspace could not be listed or read

	// Internal Errors (30-39)
	ExitInternalError = 30 // Internal error in command execution
)

// ExitCodeError carries an exit code up to main alongside the error.
type ExitCodeError struct {
	Code int   // Exit code to return
	Err  error // Underlying error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// Wrap returns err with code attached, or nil if err is nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitCodeError{Code: code, Err: err}
}

// IsExitCodeError checks if an error is an ExitCodeError and returns its code.
// Returns false and 0 if the error is not an ExitCodeError.
func IsExitCodeError(err error) (int, bool) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// CodeDescriptions maps exit codes to their human-readable descriptions
var CodeDescriptions = map[int]string{
	ExitSuccess:                 "Success",
	ExitMissingRequiredFlag:     "Required argument or flag not provided",
	ExitInputConfigurationError: "Invalid flag, config file or fields file",
	ExitUnknownKind:             "Unknown artifact kind",
	ExitArtifactNotFound:        "No plugin or theme header found",
	ExitGeneralRuntimeError:     "General runtime/system error",
	ExitIOError:                 "Workspace could not be listed or read",
	ExitInternalError:           "Internal error in command execution",
}
