// Package result provides the two-armed success/failure container used by
// validators and guarded operations. A Result is exactly one of a success
// carrying a value or a failure carrying a taxonomy error; the arms are
// mutually exclusive and exhaustive.
//
// Callers must check IsOk/IsErr before reading an arm. There is
// deliberately no unwrap-or-default convenience: Unwrap panics on the
// failure arm so misuse fails loudly instead of propagating a zero value.
package result

import (
	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
)

// Result holds either a value of type T or a taxonomy error, never both.
// The zero value is a failure arm with a nil error; construct Results only
// through Ok and Err.
type Result[T any] struct {
	value T
	err   *apperrors.Error
	ok    bool
}

// Ok constructs the success arm carrying value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err constructs the failure arm carrying err.
func Err[T any](err *apperrors.Error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the result is the success arm.
func (r Result[T]) IsOk() bool { return r.ok }

// IsErr reports whether the result is the failure arm.
func (r Result[T]) IsErr() bool { return !r.ok }

// Unwrap returns the carried value. It panics with the wrapped error when
// called on the failure arm; callers must check IsOk first.
func (r Result[T]) Unwrap() T {
	if !r.ok {
		panic(r.err)
	}
	return r.value
}

// UnwrapErr returns the carried error. It panics when called on the success
// arm; callers must check IsErr first.
func (r Result[T]) UnwrapErr() *apperrors.Error {
	if r.ok {
		panic("result: UnwrapErr called on the success arm")
	}
	return r.err
}
