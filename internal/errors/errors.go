// Package errors defines the coded errors archdsl reports to users.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable identifier for a failure mode.
type ErrorCode string

const (
	// ConfigInvalid indicates the configuration file could not be loaded or validated
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ManifestInvalid indicates a manifest file could not be parsed
	ManifestInvalid ErrorCode = "MANIFEST_INVALID"
	// ScanFailed indicates source scanning failed
	ScanFailed ErrorCode = "SCAN_FAILED"
	// TargetUndeclared indicates a relation points at an undeclared name in strict mode
	TargetUndeclared ErrorCode = "TARGET_UNDECLARED"
	// ParserUnavailable indicates the binary was built without tree-sitter support
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// CacheUnavailable indicates the scan cache could not be opened
	CacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditFile suggests editing a source or manifest file
	EditFile FixActionType = "edit-file"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
}

// ArchError is an error with a stable code and optional suggested fixes.
type ArchError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error
}

// New creates an ArchError. Suggested fixes default to the ones registered
// for code.
func New(code ErrorCode, message string, cause error) *ArchError {
	return &ArchError{
		Code:           code,
		Message:        message,
		SuggestedFixes: GetSuggestedFixes(code),
		cause:          cause,
	}
}

// Error implements the error interface
func (e *ArchError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ArchError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ArchError) WithDetails(details interface{}) *ArchError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first ArchError in err's chain, or
// InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var ae *ArchError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "archdsl config init --force",
			Description: "Rewrite the configuration with defaults",
		},
	},
	TargetUndeclared: {
		{
			Type:        EditFile,
			Description: "Declare the target entity, or run without --strict",
		},
	},
	ParserUnavailable: {
		{
			Type:        RunCommand,
			Command:     "CGO_ENABLED=1 go install archdsl/cmd/archdsl@latest",
			Description: "Rebuild with cgo so source scanning is available",
		},
	},
	CacheUnavailable: {
		{
			Type:        RunCommand,
			Command:     "archdsl render --no-cache",
			Safe:        true,
			Description: "Render without the scan cache",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
