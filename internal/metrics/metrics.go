// Package metrics exposes render outcomes as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/aretw0/waymark/pkg/hypermedia"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so several recorders (tests, embedded
// servers) can coexist without clashing on the global one.
type Recorder struct {
	registry *prometheus.Registry

	rendersTotal     *prometheus.CounterVec // renders by kind, format and outcome
	linksTotal       *prometheus.CounterVec // links embedded, by kind
	processStartTime prometheus.Gauge
}

// New creates a Recorder with the render metrics registered.
func New() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.rendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waymark_renders_total",
			Help: "Number of representations rendered.",
		},
		// kind: resource kind
		// format: json, xml, yaml
		// outcome: linked, no_transitions, no_controller, failed
		[]string{"kind", "format", "outcome"},
	)
	r.linksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waymark_links_total",
			Help: "Number of links embedded into representations.",
		},
		[]string{"kind"},
	)
	r.processStartTime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "waymark_process_start_time_seconds",
			Help: "Start time of the process since unix epoch in seconds.",
		},
	)

	r.registry.MustRegister(r.rendersTotal, r.linksTotal, r.processStartTime)
	r.processStartTime.SetToCurrentTime()
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Observe records one render event.
func (r *Recorder) Observe(e *hypermedia.RenderEvent) {
	kind := e.Kind
	if kind == "" {
		kind = "unknown"
	}
	r.rendersTotal.With(prometheus.Labels{
		"kind":    kind,
		"format":  string(e.Format),
		"outcome": string(e.Outcome),
	}).Inc()
	if e.Links > 0 {
		r.linksTotal.WithLabelValues(kind).Add(float64(e.Links))
	}
}

// Hooks returns render hooks feeding this recorder.
func (r *Recorder) Hooks() hypermedia.Hooks {
	return hypermedia.Hooks{OnRender: r.Observe}
}
