// Package errors provides structured error handling for portscanner operations.
// It defines error codes, error types, and utilities for creating and
// inspecting errors with target and field context.
package errors

import (
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"
	CodeTimeout       ErrorCode = "TIMEOUT"
	CodeCanceled      ErrorCode = "CANCELED"

	// Scanning errors.
	CodeScanFailed    ErrorCode = "SCAN_FAILED"
	CodeTargetInvalid ErrorCode = "TARGET_INVALID"
	CodePortInvalid   ErrorCode = "PORT_INVALID"

	// Output errors.
	CodeExportFailed ErrorCode = "EXPORT_FAILED"
)

// ScanError represents an error that occurred during scanning operations.
type ScanError struct {
	Code    ErrorCode
	Message string
	Target  string
	Cause   error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s (target: %s)", e.Code, e.Message, e.Target)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// NewScanError creates a new scan error with the specified code and message.
func NewScanError(code ErrorCode, message string) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
	}
}

// NewScanErrorWithTarget creates a scan error for a specific target.
func NewScanErrorWithTarget(code ErrorCode, message, target string) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Target:  target,
	}
}

// WrapScanError wraps an existing error as a scan error.
func WrapScanError(code ErrorCode, message string, err error) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// InputError represents a caller-contract violation: invalid or empty
// targets, ports, or other scan inputs. It is surfaced before any work
// is scheduled.
type InputError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error {
	return e.Cause
}

// NewInputError creates a new input error for a specific field.
func NewInputError(code ErrorCode, message, field string, value interface{}) *InputError {
	return &InputError{
		Code:    code,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// WrapInputError wraps an existing error as an input error.
func WrapInputError(code ErrorCode, message, field string, err error) *InputError {
	return &InputError{
		Code:    code,
		Message: message,
		Field:   field,
		Cause:   err,
	}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error.
func NewConfigError(code ErrorCode, message string) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
	}
}

// WrapConfigError wraps an existing error as a configuration error.
func WrapConfigError(code ErrorCode, message string, err error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Utility functions for common error operations

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error if it has one.
func GetCode(err error) ErrorCode {
	switch e := err.(type) {
	case *ScanError:
		return e.Code
	case *InputError:
		return e.Code
	case *ConfigError:
		return e.Code
	}
	return CodeUnknown
}

// Common error creation functions

// ErrInvalidTarget creates an error for invalid scan targets.
func ErrInvalidTarget(target string) *ScanError {
	return NewScanErrorWithTarget(CodeTargetInvalid, "Invalid target specification", target)
}

// ErrEmptyTargets creates an error for an empty target list.
func ErrEmptyTargets() *InputError {
	return NewInputError(CodeValidation, "No targets specified", "targets", nil)
}

// ErrEmptyPorts creates an error for an empty port list.
func ErrEmptyPorts() *InputError {
	return NewInputError(CodeValidation, "No ports specified", "ports", nil)
}

// ErrInvalidPort creates an error for a port outside [1, 65535].
func ErrInvalidPort(value interface{}) *InputError {
	return NewInputError(CodePortInvalid, "Port must be between 1 and 65535", "ports", value)
}

// ErrConfigInvalid creates an error for invalid configuration.
func ErrConfigInvalid(field string, err error) *ConfigError {
	e := WrapConfigError(CodeValidation, "Invalid configuration value", err)
	e.Field = field
	return e
}
