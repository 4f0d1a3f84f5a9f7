// Package metrics exposes Prometheus instrumentation for the client's
// error pipeline: how many failures were normalized, by kind, and how
// guarded operations concluded.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
)

// Recorder owns a private registry so independent instances never collide,
// keeping tests isolated.
type Recorder struct {
	registry *prometheus.Registry

	errorsTotal  *prometheus.CounterVec
	guardedTotal *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsecli_errors_total",
			Help: "Failures normalized into the taxonomy, by kind.",
		}, []string{"kind"}),
		guardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsecli_guarded_operations_total",
			Help: "Guarded operations, by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.errorsTotal, r.guardedTotal)
	return r
}

// ObserveError counts a normalized failure by its kind.
func (r *Recorder) ObserveError(kind apperrors.Kind) {
	r.errorsTotal.WithLabelValues(string(kind)).Inc()
}

// ObserveGuarded counts a guarded operation's outcome.
func (r *Recorder) ObserveGuarded(success bool) {
	outcome := "error"
	if success {
		outcome = "success"
	}
	r.guardedTotal.WithLabelValues(outcome).Inc()
}

// Handler returns an HTTP handler serving this recorder's registry in the
// Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
