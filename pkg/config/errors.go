package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks a setting that failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrFieldsFileExtension indicates the fields file is neither YAML nor TOML.
type ErrFieldsFileExtension struct {
	Path string
}

func (e *ErrFieldsFileExtension) Error() string {
	return fmt.Sprintf("fields file path must end with .yaml, .yml or .toml: %s", e.Path)
}

// WrapFieldsFileExtension creates a new ErrFieldsFileExtension error.
func WrapFieldsFileExtension(path string) error {
	return &ErrFieldsFileExtension{Path: path}
}

// ErrFieldsFileNotExist indicates the fields file does not exist.
type ErrFieldsFileNotExist struct {
	Path string
	Err  error
}

func (e *ErrFieldsFileNotExist) Error() string {
	return fmt.Sprintf("fields file does not exist: %s (%v)", e.Path, e.Err)
}

func (e *ErrFieldsFileNotExist) Unwrap() error {
	return e.Err
}

// WrapFieldsFileNotExist creates a new ErrFieldsFileNotExist error.
func WrapFieldsFileNotExist(path string, err error) error {
	return &ErrFieldsFileNotExist{Path: path, Err: err}
}

// ErrFieldsFileRead indicates the fields file exists but could not be read.
type ErrFieldsFileRead struct {
	Path string
	Err  error
}

func (e *ErrFieldsFileRead) Error() string {
	return fmt.Sprintf("failed to read fields file %s: %v", e.Path, e.Err)
}

func (e *ErrFieldsFileRead) Unwrap() error {
	return e.Err
}

// WrapFieldsFileRead creates a new ErrFieldsFileRead error.
func WrapFieldsFileRead(path string, err error) error {
	return &ErrFieldsFileRead{Path: path, Err: err}
}

// ErrFieldsFileParse indicates the fields file is not valid YAML or has an
// unexpected shape.
type ErrFieldsFileParse struct {
	Path string
	Err  error
}

func (e *ErrFieldsFileParse) Error() string {
	return fmt.Sprintf("failed to parse fields file %s: %v", e.Path, e.Err)
}

func (e *ErrFieldsFileParse) Unwrap() error {
	return e.Err
}

// WrapFieldsFileParse creates a new ErrFieldsFileParse error.
func WrapFieldsFileParse(path string, err error) error {
	return &ErrFieldsFileParse{Path: path, Err: err}
}

// ErrInvalidField indicates an entry in the fields file cannot be used.
type ErrInvalidField struct {
	Path   string
	Kind   string
	Field  string
	Reason string
}

func (e *ErrInvalidField) Error() string {
	return fmt.Sprintf("invalid %s field %q in %s: %s", e.Kind, e.Field, e.Path, e.Reason)
}
