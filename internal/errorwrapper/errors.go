package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")
	// ErrNetworkFailure indicates network connectivity issues
	ErrNetworkFailure = errors.New("network failure")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents configuration validation errors with
// field-specific information. It is fatal: the run aborts before any
// network call is made.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NetworkError represents transport-level failures: connection errors,
// DNS failures, timeouts.
type NetworkError struct {
	URL     string
	Reason  string
	Wrapped error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for URL '%s': %s", e.URL, e.Reason)
}

func (e *NetworkError) Unwrap() error {
	return e.Wrapped
}

// NewNetworkError creates a new network error
func NewNetworkError(url, reason string, wrapped error) *NetworkError {
	return &NetworkError{
		URL:     url,
		Reason:  reason,
		Wrapped: wrapped,
	}
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// HTTPError represents a non-success response from an upstream server.
// Callers decide whether it is fatal for the run or skippable per item.
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *HTTPError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("HTTP %d error for URL '%s': %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("HTTP %d error: %s", e.StatusCode, e.Message)
}

// NewHTTPErrorWithURL creates a new HTTP error with URL context
func NewHTTPErrorWithURL(statusCode int, message, url string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		URL:        url,
	}
}

// IsHTTPError reports whether err is (or wraps) an HTTPError.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// ParseError represents a malformed field on a single extracted item:
// a date that does not match the expected format, a missing attribute.
// It never escalates past the item it belongs to.
type ParseError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: field '%s' with value '%s'", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// NewParseError creates a new parse error
func NewParseError(field, value string, wrapped error) *ParseError {
	return &ParseError{
		Field:   field,
		Value:   value,
		Wrapped: wrapped,
	}
}

// ContractError signals that the expected structure of the upstream
// source is gone: the listing container selector matched nothing, the
// detail page has no heading, the feed parsed empty. Silent structural
// drift is the dominant failure mode of a scraper, so this condition
// is surfaced loudly (a dedicated alert notification) instead of being
// reported as zero entries.
type ContractError struct {
	URL    string
	Marker string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("upstream contract changed for '%s': expected marker '%s' not found", e.URL, e.Marker)
}

// NewContractError creates a new upstream contract error
func NewContractError(url, marker string) *ContractError {
	return &ContractError{URL: url, Marker: marker}
}

// IsContractError reports whether err is (or wraps) a ContractError.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}
