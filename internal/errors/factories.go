package apperrors

import "time"

// newError is the shared construction path for every factory. It stamps the
// current time and default severity; factories add their kind-specific
// fields on top.
func newError(kind Kind, message string) *Error {
	return &Error{
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
		Severity:  SeverityError,
	}
}

// Network creates a network-family error. The retryable flag records whether
// the transport considers the failure transient. A retry-after hint can be
// attached with WithRetryAfter.
func Network(message string, retryable bool) *Error {
	e := newError(KindNetwork, message)
	e.Retryable = retryable
	return e
}

// Timeout creates a timeout error. Timeouts are always retryable.
func Timeout(message string) *Error {
	e := newError(KindTimeout, message)
	e.Retryable = true
	return e
}

// Connection creates a connection error. Connection failures are always
// retryable.
func Connection(message string) *Error {
	e := newError(KindConnection, message)
	e.Retryable = true
	return e
}

// Unauthorized creates an error indicating the caller is not signed in.
func Unauthorized(message string) *Error { return newError(KindUnauthorized, message) }

// Forbidden creates an error indicating the caller lacks permission.
func Forbidden(message string) *Error { return newError(KindForbidden, message) }

// SessionExpired creates an error indicating the auth session is no longer
// valid and the user must sign in again.
func SessionExpired(message string) *Error { return newError(KindSessionExpired, message) }

// InvalidCredentials creates an error for a rejected sign-in attempt.
func InvalidCredentials(message string) *Error { return newError(KindInvalidCredentials, message) }

// Validation creates a validation error naming the offending field. Pass an
// empty field when the failure is not tied to a single field.
func Validation(message, field string) *Error {
	e := newError(KindValidation, message)
	e.Field = field
	if field != "" {
		e.FieldErrors = map[string][]string{field: {message}}
	}
	return e
}

// ValidationFields creates a validation error carrying messages for several
// fields at once.
func ValidationFields(message string, fieldErrors map[string][]string) *Error {
	e := newError(KindValidation, message)
	e.FieldErrors = fieldErrors
	return e
}

// InvalidInput creates an error for input that is structurally invalid.
func InvalidInput(message string) *Error { return newError(KindInvalidInput, message) }

// MissingField creates an error for an absent required field.
func MissingField(field string) *Error {
	e := newError(KindMissingField, field+" is required")
	e.Field = field
	return e
}

// MediaUploadFailed creates an error for a failed media upload.
func MediaUploadFailed(message, fileName string) *Error {
	e := newError(KindMediaUploadFailed, message)
	e.FileName = fileName
	return e
}

// MediaTooLarge creates an error for a media file exceeding its size bound.
func MediaTooLarge(fileName string, maxSizeBytes int64) *Error {
	e := newError(KindMediaTooLarge, "file exceeds the maximum allowed size")
	e.FileName = fileName
	e.MaxSizeBytes = maxSizeBytes
	return e
}

// InvalidMediaType creates an error for a media file whose MIME type is not
// in the allow-list.
func InvalidMediaType(fileName string, allowedTypes []string) *Error {
	e := newError(KindInvalidMediaType, "file type is not allowed")
	e.FileName = fileName
	e.AllowedTypes = allowedTypes
	return e
}

// MediaProcessing creates an error for media the backend accepted but could
// not process.
func MediaProcessing(message, fileName string) *Error {
	e := newError(KindMediaProcessing, message)
	e.FileName = fileName
	return e
}

// Database creates a generic database error.
func Database(message string) *Error { return newError(KindDatabase, message) }

// NotFound creates an error for a missing resource.
func NotFound(message string) *Error { return newError(KindNotFound, message) }

// Duplicate creates an error for a uniqueness violation.
func Duplicate(message string) *Error { return newError(KindDuplicate, message) }

// RateLimit creates a rate-limit error. All four fields are mandatory for
// this kind: the suggested wait, the quota, and the remaining allowance.
func RateLimit(message string, retryAfterSeconds, limit, remaining int) *Error {
	e := newError(KindRateLimited, message)
	e.RetryAfterSeconds = retryAfterSeconds
	e.Limit = limit
	e.Remaining = remaining
	return e
}

// Unknown creates an error for a failure that matched no other kind. The
// original cause, if any, is retained for diagnostics.
func Unknown(message string, cause error) *Error {
	e := newError(KindUnknown, message)
	e.Cause = cause
	return e
}

// Server creates a generic server-side error. Server errors are retryable.
func Server(message string) *Error { return newError(KindServer, message) }

// Critical normalizes a fault captured by a containment boundary into a
// critical-severity error and records the structural origin description.
func Critical(v any, origin string) *Error {
	e := Normalize(v)
	e.Severity = SeverityCritical
	e.Origin = origin
	return e
}
