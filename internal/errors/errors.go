package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application exit codes define the standard exit statuses for the binary.
// These codes signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorRetryable  = 2   // Indicates a retryable failure (network, rate limit, server).
	ExitErrorValidation = 3   // Indicates the input was rejected by a validator.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Severity distinguishes ordinary failures from faults captured at a crash
// containment boundary.
type Severity int

const (
	// SeverityError is the default severity for every factory-constructed error.
	SeverityError Severity = iota
	// SeverityCritical marks faults that escaped normal error handling and
	// were captured by a containment boundary.
	SeverityCritical
)

// String returns a human-readable severity label.
func (s Severity) String() string {
	if s == SeverityCritical {
		return "critical"
	}
	return "error"
}

// Error is the single taxonomy member type. Kind selects which of the
// optional fields are meaningful; the factory functions enforce that every
// kind is constructed with exactly the fields its invariant demands. An
// Error is immutable after construction apart from the chainable With*
// helpers used at the construction site.
type Error struct {
	// Kind classifies the failure. Immutable once assigned.
	Kind Kind
	// Message is the raw, developer-facing message.
	Message string
	// Timestamp records when the factory constructed this error.
	Timestamp time.Time
	// Severity is SeverityError unless a containment boundary captured
	// the failure.
	Severity Severity

	// Field names the offending input field for validation-family errors.
	Field string
	// FieldErrors maps field names to their validation messages.
	FieldErrors map[string][]string

	// Retryable is meaningful for network-family errors only.
	Retryable bool
	// RetryAfterSeconds is the server-suggested wait before retrying.
	// Mandatory for rate_limited, optional for network.
	RetryAfterSeconds int
	// Limit is the request quota of the violated rate limit.
	Limit int
	// Remaining is the remaining quota of the violated rate limit.
	Remaining int

	// MaxSizeBytes is the size bound a media file exceeded.
	MaxSizeBytes int64
	// AllowedTypes lists the acceptable MIME types for the rejected media.
	AllowedTypes []string
	// FileName names the media file the failure concerns.
	FileName string

	// Origin is a structural description of where a contained fault was
	// raised (set by containment boundaries).
	Origin string
	// Cause is the underlying failure this error was normalized from.
	Cause error
	// Value retains an unrecognized raw value for diagnostics.
	Value any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %q)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, allowing errors.Is and errors.As to
// traverse the chain.
func (e *Error) Unwrap() error { return e.Cause }

// userMessages maps every kind to its fixed, human-readable message. The
// raw Message is shown only in debug mode.
var userMessages = map[Kind]string{
	KindNetwork:            "A network error occurred. Please check your connection.",
	KindTimeout:            "The operation took too long. Please try again.",
	KindConnection:         "Could not reach the server. Please check your connection.",
	KindUnauthorized:       "You need to sign in to do that.",
	KindForbidden:          "You don't have permission to do that.",
	KindSessionExpired:     "Your session has expired. Please sign in again.",
	KindInvalidCredentials: "The email or password you entered is incorrect.",
	KindValidation:         "Some fields need your attention.",
	KindInvalidInput:       "The value you entered is not valid.",
	KindMissingField:       "A required field is missing.",
	KindMediaUploadFailed:  "The upload failed. Please try again.",
	KindMediaTooLarge:      "That file is too large to upload.",
	KindInvalidMediaType:   "That file type is not supported.",
	KindMediaProcessing:    "We couldn't process that file.",
	KindDatabase:           "Something went wrong saving your data.",
	KindNotFound:           "We couldn't find what you were looking for.",
	KindDuplicate:          "That already exists.",
	KindRateLimited:        "You're doing that too fast. Please slow down.",
	KindUnknown:            "Something unexpected went wrong.",
	KindServer:             "The server had a problem. Please try again.",
}

// UserMessage returns the fixed human-readable message for the error's kind.
func (e *Error) UserMessage() string {
	if msg, ok := userMessages[e.Kind]; ok {
		return msg
	}
	return userMessages[KindUnknown]
}

// DebugString returns a verbose representation for developer/debug mode,
// including the raw message, origin description, and cause chain.
func (e *Error) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", e.Severity, e.Kind, e.Message)
	if e.Field != "" {
		fmt.Fprintf(&b, " field=%q", e.Field)
	}
	if e.IsRetryable() {
		fmt.Fprintf(&b, " retryable=true")
		if e.RetryAfterSeconds > 0 {
			fmt.Fprintf(&b, " retry_after=%ds", e.RetryAfterSeconds)
		}
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, "\ncause: %v", e.Cause)
	}
	if e.Origin != "" {
		fmt.Fprintf(&b, "\norigin:\n%s", e.Origin)
	}
	return b.String()
}

// WithRetryAfter records a server-suggested retry delay on a network-family
// error and returns the same receiver for chaining at the construction site.
func (e *Error) WithRetryAfter(seconds int) *Error {
	if e == nil {
		return nil
	}
	e.RetryAfterSeconds = seconds
	return e
}

// WithCause records the underlying failure and returns the same receiver for
// chaining at the construction site.
func (e *Error) WithCause(cause error) *Error {
	if e == nil {
		return nil
	}
	e.Cause = cause
	return e
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps a taxonomy error to the process exit code the binary
// should terminate with.
func ExitCodeFor(e *Error) int {
	switch {
	case e == nil:
		return ExitSuccess
	case IsContextError(e.Cause):
		return ExitErrorCanceled
	case e.IsValidation():
		return ExitErrorValidation
	case e.IsRetryable():
		return ExitErrorRetryable
	default:
		return ExitErrorGeneric
	}
}
