// Package boundary provides a crash containment point around a region of
// synchronous work. Any unhandled panic raised while evaluating the region
// is caught exactly once at the nearest enclosing boundary, normalized
// into a critical-severity error, and replaced with fallback output.
//
// Boundaries nest: an inner boundary contains its own region's faults; a
// fault in a region with no inner boundary propagates to the outermost
// enclosing one. A Boundary instance is owned by its creating scope and is
// confined to that scope's goroutine.
package boundary

import (
	"fmt"
	"runtime/debug"
	"strings"

	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
	"github.com/pulsefeed/pulsecli/internal/logging"
)

// Boundary wraps a region producing T. It starts in the passthrough state;
// the first unhandled fault moves it to contained, where every Execute
// call yields the fallback until Reset is called. There is no auto-retry.
type Boundary[T any] struct {
	fallback  func(*apperrors.Error) T
	logger    logging.Logger
	contained bool
	captured  *apperrors.Error
}

// Option configures a Boundary during construction.
type Option[T any] func(*Boundary[T])

// WithLogger makes the boundary log every captured fault.
func WithLogger[T any](logger logging.Logger) Option[T] {
	return func(b *Boundary[T]) { b.logger = logger }
}

// New creates a passthrough Boundary substituting fallback output for a
// contained region.
func New[T any](fallback func(*apperrors.Error) T, opts ...Option[T]) *Boundary[T] {
	b := &Boundary[T]{
		fallback: fallback,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Execute evaluates the region. In the passthrough state the region runs
// normally and its output is returned; if it panics, the fault and a
// structural description of its origin are captured, the boundary enters
// the contained state, and the fallback output is returned instead. In the
// contained state the region is not evaluated at all.
func (b *Boundary[T]) Execute(region func() T) (out T) {
	if b.contained {
		return b.fallback(b.captured)
	}
	defer func() {
		if r := recover(); r != nil {
			origin := describeOrigin(debug.Stack())
			b.captured = apperrors.Critical(r, origin)
			b.contained = true
			b.logger.Error("fault contained",
				logging.Kind(b.captured.Kind),
				logging.String("message", b.captured.Message),
				logging.String("origin", origin))
			out = b.fallback(b.captured)
		}
	}()
	return region()
}

// Contained reports whether the boundary is holding a captured fault.
func (b *Boundary[T]) Contained() bool { return b.contained }

// Captured returns the fault captured by the boundary, or nil in the
// passthrough state.
func (b *Boundary[T]) Captured() *apperrors.Error { return b.captured }

// Reset discards the captured fault and re-admits a fresh instance of the
// region. A recurring fault after Reset re-enters the contained state
// without crashing the host.
func (b *Boundary[T]) Reset() {
	b.contained = false
	b.captured = nil
}

// describeOrigin trims a raw stack trace to the frames below the recovery
// machinery, giving a compact structural description of where the fault
// was raised.
func describeOrigin(stack []byte) string {
	lines := strings.Split(string(stack), "\n")
	// Drop the "goroutine N [running]:" header and the frames belonging
	// to the panic/recover machinery itself.
	var kept []string
	skip := true
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if skip {
			if strings.HasPrefix(line, "panic(") || strings.Contains(line, "runtime/debug.Stack") {
				// Skip this frame and its file line.
				i++
				continue
			}
			if strings.HasPrefix(line, "goroutine ") {
				continue
			}
			skip = strings.Contains(line, "boundary.") || strings.Contains(line, "runtime.")
			if skip {
				i++
				continue
			}
		}
		kept = append(kept, line)
	}
	const maxLines = 12
	if len(kept) > maxLines {
		kept = kept[:maxLines]
		kept = append(kept, "...")
	}
	origin := strings.TrimSpace(strings.Join(kept, "\n"))
	if origin == "" {
		return fmt.Sprintf("%d-byte stack with no user frames", len(stack))
	}
	return origin
}
