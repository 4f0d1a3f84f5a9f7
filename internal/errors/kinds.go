package apperrors

// Kind identifies the failure class of an Error. The set is closed: every
// failure the client can observe is normalized into exactly one Kind, and a
// Kind never changes after construction.
type Kind string

// All error kinds recognized by the client.
const (
	KindNetwork            Kind = "network"
	KindTimeout            Kind = "timeout"
	KindConnection         Kind = "connection"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindSessionExpired     Kind = "session_expired"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindValidation         Kind = "validation"
	KindInvalidInput       Kind = "invalid_input"
	KindMissingField       Kind = "missing_field"
	KindMediaUploadFailed  Kind = "media_upload_failed"
	KindMediaTooLarge      Kind = "media_too_large"
	KindInvalidMediaType   Kind = "invalid_media_type"
	KindMediaProcessing    Kind = "media_processing_failed"
	KindDatabase           Kind = "database"
	KindNotFound           Kind = "not_found"
	KindDuplicate          Kind = "duplicate"
	KindRateLimited        Kind = "rate_limited"
	KindUnknown            Kind = "unknown"
	KindServer             Kind = "server"
)

// String returns the stable string form of the kind.
func (k Kind) String() string { return string(k) }

// IsNetwork reports whether the error belongs to the network family
// (network, timeout, connection).
func (e *Error) IsNetwork() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout, KindConnection:
		return true
	}
	return false
}

// IsAuth reports whether the error belongs to the authentication family
// (unauthorized, forbidden, session_expired, invalid_credentials).
func (e *Error) IsAuth() bool {
	switch e.Kind {
	case KindUnauthorized, KindForbidden, KindSessionExpired, KindInvalidCredentials:
		return true
	}
	return false
}

// IsValidation reports whether the error belongs to the validation family
// (validation, invalid_input, missing_field).
func (e *Error) IsValidation() bool {
	switch e.Kind {
	case KindValidation, KindInvalidInput, KindMissingField:
		return true
	}
	return false
}

// IsMedia reports whether the error belongs to the media family
// (media_upload_failed, media_too_large, invalid_media_type,
// media_processing_failed).
func (e *Error) IsMedia() bool {
	switch e.Kind {
	case KindMediaUploadFailed, KindMediaTooLarge, KindInvalidMediaType, KindMediaProcessing:
		return true
	}
	return false
}

// IsDatabase reports whether the error belongs to the database family
// (database, not_found, duplicate).
func (e *Error) IsDatabase() bool {
	switch e.Kind {
	case KindDatabase, KindNotFound, KindDuplicate:
		return true
	}
	return false
}

// IsRateLimited reports whether the error is a rate-limit rejection.
func (e *Error) IsRateLimited() bool { return e.Kind == KindRateLimited }

// IsRetryable reports whether retrying the failed operation unchanged may
// succeed. Network-family errors are retryable when their Retryable flag is
// set; rate-limited and generic server errors are always retryable. All
// other kinds require user action rather than a retry.
func (e *Error) IsRetryable() bool {
	if e.IsNetwork() {
		return e.Retryable
	}
	return e.Kind == KindRateLimited || e.Kind == KindServer
}
