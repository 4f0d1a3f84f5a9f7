package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
)

// unknownMessage is the fixed message used when a raw value carries no
// usable description of its own.
const unknownMessage = "An unknown error occurred"

// BackendError is the raw failure shape returned by the remote backend: a
// SQLSTATE-style code plus a message. The normalizer owns the table that
// maps these onto the taxonomy; nothing else in the client should inspect
// backend codes directly.
type BackendError struct {
	// Code is the backend's machine-readable failure code (SQLSTATE).
	Code string
	// Message is the backend's failure description.
	Message string
	// Hint is an optional remediation hint from the backend.
	Hint string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %s: %s", e.Code, e.Message)
	}
	return "backend error: " + e.Message
}

// Normalize converts an arbitrary raw failure into exactly one taxonomy
// member. Matching precedence, first match wins:
//
//  1. An *Error is returned unchanged.
//  2. A *BackendError is resolved through the backend code table.
//  3. An error whose message marks it as a network-layer failure becomes a
//     retryable timeout or network error.
//  4. Any other error becomes unknown, retaining the original as cause.
//  5. A plain string becomes unknown with the string as message.
//  6. Anything else becomes unknown with a fixed message, retaining the
//     original value for diagnostics.
//
// The order is load-bearing: later rules are fallbacks for when earlier,
// more specific matches fail. A backend failure that also has a
// timeout-like message resolves through the backend table, never rule 3.
func Normalize(v any) *Error {
	switch x := v.(type) {
	case nil:
		return Unknown(unknownMessage, nil)
	case *Error:
		return x
	case *BackendError:
		return fromBackend(x)
	case BackendError:
		return fromBackend(&x)
	case error:
		var appErr *Error
		if errors.As(x, &appErr) {
			return appErr
		}
		var backendErr *BackendError
		if errors.As(x, &backendErr) {
			return fromBackend(backendErr)
		}
		if netErr := classifyNetworkFailure(x); netErr != nil {
			return netErr
		}
		return Unknown(x.Error(), x)
	case string:
		return Unknown(x, nil)
	default:
		e := Unknown(unknownMessage, nil)
		e.Value = v
		return e
	}
}

// fromBackend resolves a backend failure through the fixed matching table.
// The message phrases are owned by the backend and can change without
// notice; each row has a dedicated regression test. Row order matters: code
// matches take precedence over phrase matches, and the phrase rows keep the
// order the backend contract was documented with.
func fromBackend(be *BackendError) *Error {
	msg := strings.ToLower(be.Message)
	switch {
	case be.Code == pgerrcode.UniqueViolation:
		return Duplicate(be.Message).WithCause(be)
	case be.Code == pgerrcode.ForeignKeyViolation:
		return NotFound(be.Message).WithCause(be)
	case strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "row-level security"):
		return Forbidden(be.Message).WithCause(be)
	case strings.Contains(msg, "jwt"), strings.Contains(msg, "token"):
		return SessionExpired(be.Message).WithCause(be)
	case strings.Contains(msg, "invalid login credentials"):
		return InvalidCredentials(be.Message).WithCause(be)
	default:
		return Database(be.Message).WithCause(be)
	}
}

// classifyNetworkFailure recognizes network-layer failures by message
// substring, the only signal the transport exposes. Returns nil when the
// error is not a network-layer failure.
func classifyNetworkFailure(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout(err.Error()).WithCause(err)
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return Timeout(err.Error()).WithCause(err)
	case strings.Contains(msg, "network request failed"):
		return Network(err.Error(), true).WithCause(err)
	}
	return nil
}
