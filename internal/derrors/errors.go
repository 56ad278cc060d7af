// Package derrors provides custom error types for pshim.
// Every fatal condition in either mode is one of these types, which lets the entry
// point decide how (and whether) to report it.
package derrors

import (
	"errors"
	"fmt"
)

// ShimError is the base interface for all pshim errors
type ShimError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all pshim errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigurationError represents environment or installation problems:
// a missing build tool binary, an unknown program name, a bad config file.
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents invalid user or shell input
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// CollaboratorError represents a build tool query that failed or returned
// output we could not understand.
type CollaboratorError struct {
	baseError
	Command  string
	ExitCode int
	Stderr   string
}

// NewCollaboratorError creates a new collaborator error
func NewCollaboratorError(command string, exitCode int, stderr string, message string, cause error) *CollaboratorError {
	return &CollaboratorError{
		baseError: baseError{
			code:    "COLLABORATOR_ERROR",
			message: message,
			cause:   cause,
		},
		Command:  command,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
}

// MissingBuildFileError is returned when a directory has no build definition file
type MissingBuildFileError struct {
	baseError
	Dir string
}

// NewMissingBuildFileError creates a new missing build file error
func NewMissingBuildFileError(dir string, buildFile string) *MissingBuildFileError {
	return &MissingBuildFileError{
		baseError: baseError{
			code:    "MISSING_BUILD_FILE",
			message: fmt.Sprintf("no %s in %s", buildFile, dir),
		},
		Dir: dir,
	}
}

// ExecutionError represents errors launching a command
type ExecutionError struct {
	baseError
	Command string
}

// NewExecutionError creates a new execution error
func NewExecutionError(command string, message string, cause error) *ExecutionError {
	return &ExecutionError{
		baseError: baseError{
			code:    "EXEC_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// CodeOf returns the code of the first ShimError in err's chain, or "" if there is none.
func CodeOf(err error) string {
	var se ShimError
	if errors.As(err, &se) {
		return se.Code()
	}
	return ""
}
