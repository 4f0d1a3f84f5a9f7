// Package surface provides the per-scope reactive error state interactive
// components consume: a single "current error" slot, an independent
// per-field message map, change subscriptions, and guarded execution of
// fallible operations.
//
// A Surface is owned by the scope that creates it and is confined to that
// scope's goroutine; calls are processed in invocation order and there is
// no internal locking. Independent Surface instances share no state.
package surface

import (
	"context"

	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
	"github.com/pulsefeed/pulsecli/internal/logging"
	"github.com/pulsefeed/pulsecli/internal/metrics"
	"github.com/pulsefeed/pulsecli/internal/result"
)

// Surface holds the current error slot and the per-field message map. The
// error slot has two states: clear (Current() == nil) and set; Report
// replaces, Dismiss clears. The field map is independent of the slot and
// holds many entries simultaneously, last write wins per field.
type Surface struct {
	current     *apperrors.Error
	fieldErrors map[string]string
	listeners   map[int]func()
	nextID      int
	logger      logging.Logger
	recorder    *metrics.Recorder
}

// Option configures a Surface during construction.
type Option func(*Surface)

// WithLogger makes the surface log every reported failure.
func WithLogger(logger logging.Logger) Option {
	return func(s *Surface) { s.logger = logger }
}

// WithRecorder makes the surface record reported failures as metrics.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(s *Surface) { s.recorder = recorder }
}

// New creates an empty Surface.
func New(opts ...Option) *Surface {
	s := &Surface{
		fieldErrors: make(map[string]string),
		listeners:   make(map[int]func()),
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the error currently held, or nil when the surface is
// clear.
func (s *Surface) Current() *apperrors.Error { return s.current }

// Report normalizes a raw failure into the taxonomy and stores it,
// replacing any previous error: only the most recent failure is retained.
// The normalized error is returned for the caller's convenience.
func (s *Surface) Report(raw any) *apperrors.Error {
	e := apperrors.Normalize(raw)
	s.current = e
	s.logger.Error("failure reported", logging.Kind(e.Kind), logging.String("message", e.Message))
	if s.recorder != nil {
		s.recorder.ObserveError(e.Kind)
	}
	s.notify()
	return e
}

// Dismiss clears the current error. Dismissing an already-clear surface is
// a no-op and does not notify subscribers.
func (s *Surface) Dismiss() {
	if s.current == nil {
		return
	}
	s.current = nil
	s.notify()
}

// SetFieldError records a message for a form field. A later write for the
// same field overwrites the earlier one.
func (s *Surface) SetFieldError(field, message string) {
	s.fieldErrors[field] = message
	s.notify()
}

// ClearFieldError removes the message for a form field, if any.
func (s *Surface) ClearFieldError(field string) {
	if _, ok := s.fieldErrors[field]; !ok {
		return
	}
	delete(s.fieldErrors, field)
	s.notify()
}

// ClearFieldErrors removes every per-field message.
func (s *Surface) ClearFieldErrors() {
	if len(s.fieldErrors) == 0 {
		return
	}
	s.fieldErrors = make(map[string]string)
	s.notify()
}

// FieldError returns the message recorded for a field.
func (s *Surface) FieldError(field string) (string, bool) {
	msg, ok := s.fieldErrors[field]
	return msg, ok
}

// HasFieldError reports whether a message is recorded for the field.
func (s *Surface) HasFieldError(field string) bool {
	_, ok := s.fieldErrors[field]
	return ok
}

// FieldErrors returns a copy of the per-field message map.
func (s *Surface) FieldErrors() map[string]string {
	out := make(map[string]string, len(s.fieldErrors))
	for k, v := range s.fieldErrors {
		out[k] = v
	}
	return out
}

// ApplyValidation stores the per-field messages of a validation-family
// error into the field map and reports the error itself. Non-validation
// errors are reported without touching the field map.
func (s *Surface) ApplyValidation(e *apperrors.Error) {
	if e == nil {
		return
	}
	if e.IsValidation() {
		if e.Field != "" && len(e.FieldErrors) == 0 {
			s.fieldErrors[e.Field] = e.Message
		}
		for field, msgs := range e.FieldErrors {
			if len(msgs) > 0 {
				s.fieldErrors[field] = msgs[0]
			}
		}
	}
	s.Report(e)
}

// Subscribe registers a callback invoked after every state change. The
// returned function unsubscribes the callback.
func (s *Surface) Subscribe(fn func()) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Surface) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Run executes a fallible operation under the surface's guard. Any
// existing error is cleared first; on success the surface remains clear
// and the value is returned in the success arm. On failure — an error
// return or a panic — the failure is normalized into the surface and
// returned in the failure arm, never re-raised: the caller observes the
// outcome only through the surface and the returned result.
//
// Cancellation of an in-flight operation whose surface was torn down is
// the caller's obligation via ctx; a late completion will still overwrite
// state unless the caller discards it.
func Run[T any](ctx context.Context, s *Surface, op func(context.Context) (T, error)) (res result.Result[T]) {
	s.Dismiss()
	defer func() {
		if r := recover(); r != nil {
			e := s.Report(r)
			if s.recorder != nil {
				s.recorder.ObserveGuarded(false)
			}
			res = result.Err[T](e)
		}
	}()

	value, err := op(ctx)
	if err != nil {
		e := s.Report(err)
		if s.recorder != nil {
			s.recorder.ObserveGuarded(false)
		}
		return result.Err[T](e)
	}
	if s.recorder != nil {
		s.recorder.ObserveGuarded(true)
	}
	return result.Ok(value)
}
