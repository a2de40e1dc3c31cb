// Package errors provides standardized error types for the tenantrouter CLI.
//
// RouteError is the single error type used across the tool. It carries a
// Code that categorizes the failure, so callers can branch with errors.Is
// against the sentinel values below without string matching.
//
// # Error Kinds
//
//   - USAGE: missing or malformed CLI arguments
//   - VALIDATION: a tenant id, domain or port was rejected before any I/O
//   - IO / PERMISSION: a config file or symlink could not be written
//   - CONFIG_TEST: nginx rejected the generated configuration
//   - RELOAD: the service manager failed to reload nginx
//   - PORT: no free port could be determined
//
// # Usage
//
//	return errors.WrapDomain(errors.ErrCodeIO, domain, "failed to write config", err)
//
//	if errors.Is(err, errors.ErrReloadFailed) {
//	    // config is on disk, reload failed
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"   // Route not found
	ErrCodeValidation ErrorCode = "VALIDATION"  // Input validation failed
	ErrCodeUsage      ErrorCode = "USAGE"       // Bad CLI invocation
	ErrCodeIO         ErrorCode = "IO"          // File or symlink operation failed
	ErrCodePermission ErrorCode = "PERMISSION"  // Directory not writable
	ErrCodeConfig     ErrorCode = "CONFIG"      // Tool configuration error
	ErrCodePort       ErrorCode = "PORT"        // Port allocation failed
	ErrCodeConfigTest ErrorCode = "CONFIG_TEST" // nginx -t rejected the config
	ErrCodeReload     ErrorCode = "RELOAD"      // Service reload failed
	ErrCodeInternal   ErrorCode = "INTERNAL"    // Internal/unexpected error
)

// RouteError represents a structured error with context about the operation.
type RouteError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *RouteError) Error() string {
	if e.Domain != "" && e.Err != nil {
		return fmt.Sprintf("route %s: %s: %v", e.Domain, e.Message, e.Err)
	}
	if e.Domain != "" {
		return fmt.Sprintf("route %s: %s", e.Domain, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *RouteError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *RouteError) Is(target error) bool {
	t, ok := target.(*RouteError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrRouteNotFound indicates no config file exists for the domain.
	ErrRouteNotFound = &RouteError{Code: ErrCodeNotFound, Message: "route not found"}

	// ErrInvalidInput indicates a tenant id, domain or port was rejected.
	ErrInvalidInput = &RouteError{Code: ErrCodeValidation, Message: "invalid input"}

	// ErrUsage indicates the command was invoked with bad arguments.
	ErrUsage = &RouteError{Code: ErrCodeUsage, Message: "invalid usage"}

	// ErrWriteFailed indicates a config file or symlink could not be written.
	ErrWriteFailed = &RouteError{Code: ErrCodeIO, Message: "write failed"}

	// ErrPermissionDenied indicates a managed directory is not writable.
	ErrPermissionDenied = &RouteError{Code: ErrCodePermission, Message: "permission denied"}

	// ErrConfigInvalid indicates the tool configuration is invalid.
	ErrConfigInvalid = &RouteError{Code: ErrCodeConfig, Message: "invalid configuration"}

	// ErrNoPortAvailable indicates the port range has no free port.
	ErrNoPortAvailable = &RouteError{Code: ErrCodePort, Message: "no port available"}

	// ErrConfigTestFailed indicates nginx rejected the configuration.
	ErrConfigTestFailed = &RouteError{Code: ErrCodeConfigTest, Message: "configuration test failed"}

	// ErrReloadFailed indicates the service manager could not reload nginx.
	ErrReloadFailed = &RouteError{Code: ErrCodeReload, Message: "reload failed"}
)

// NotFound creates an error for a route that doesn't exist.
func NotFound(domain string) error {
	return &RouteError{
		Code:    ErrCodeNotFound,
		Message: "route not found",
		Domain:  domain,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &RouteError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Usage creates a usage error with a custom message.
func Usage(msg string) error {
	return &RouteError{
		Code:    ErrCodeUsage,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &RouteError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapDomain creates an error with domain context and underlying error.
func WrapDomain(code ErrorCode, domain, msg string, err error) error {
	return &RouteError{
		Code:    code,
		Message: msg,
		Domain:  domain,
		Err:     err,
	}
}

// CodeOf returns the code of the first RouteError in err's chain,
// or ErrCodeInternal if there is none.
func CodeOf(err error) ErrorCode {
	var re *RouteError
	if errors.As(err, &re) {
		return re.Code
	}
	return ErrCodeInternal
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
