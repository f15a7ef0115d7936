// Package metrics exports builder activity to Prometheus.
//
// A Recorder implements h.Metrics:
//
//	rec := metrics.New(metrics.WithNamespace("myapp"))
//	ctx := h.New(nil, h.WithMetrics(rec))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/hyperdom/pkg/h"
)

// Config configures a Recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "hyperdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "hyperdom",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Recorder holds the builder metrics.
//
// Metrics collected:
//   - hyperdom_elements_built_total: Counter of elements created from selectors
//   - hyperdom_bindings_total: Counter of observable bindings by kind
//   - hyperdom_bindings_active: Gauge of bindings waiting for cleanup
//   - hyperdom_binding_updates_total: Counter of applied emissions by kind
//   - hyperdom_cleanups_total: Counter of Cleanup calls that ran callbacks
//   - hyperdom_cleanup_callbacks_total: Counter of unsubscribe callbacks run
type Recorder struct {
	elementsBuilt    prometheus.Counter
	bindingsTotal    *prometheus.CounterVec
	bindingsActive   prometheus.Gauge
	bindingUpdates   *prometheus.CounterVec
	cleanupsTotal    prometheus.Counter
	cleanupCallbacks prometheus.Counter
}

var _ h.Metrics = (*Recorder)(nil)

// New creates a Recorder and registers its metrics. Registering twice with
// the same registry panics, as with promauto.
func New(opts ...Option) *Recorder {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Recorder{
		elementsBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "elements_built_total",
			Help:        "Total number of elements created from selector shorthand",
			ConstLabels: config.ConstLabels,
		}),

		bindingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bindings_total",
			Help:        "Total number of observable bindings by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		bindingsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bindings_active",
			Help:        "Number of bindings waiting for cleanup",
			ConstLabels: config.ConstLabels,
		}),

		bindingUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "binding_updates_total",
			Help:        "Total number of observable emissions applied to the tree",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		cleanupsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cleanups_total",
			Help:        "Total number of cleanups that released bindings",
			ConstLabels: config.ConstLabels,
		}),

		cleanupCallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cleanup_callbacks_total",
			Help:        "Total number of unsubscribe callbacks run by cleanup",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ElementBuilt implements h.Metrics.
func (r *Recorder) ElementBuilt() {
	r.elementsBuilt.Inc()
}

// BindingAdded implements h.Metrics.
func (r *Recorder) BindingAdded(kind h.BindingKind) {
	r.bindingsTotal.WithLabelValues(string(kind)).Inc()
	r.bindingsActive.Inc()
}

// BindingUpdated implements h.Metrics.
func (r *Recorder) BindingUpdated(kind h.BindingKind) {
	r.bindingUpdates.WithLabelValues(string(kind)).Inc()
}

// Cleaned implements h.Metrics.
func (r *Recorder) Cleaned(callbacks int) {
	r.cleanupsTotal.Inc()
	r.cleanupCallbacks.Add(float64(callbacks))
	r.bindingsActive.Sub(float64(callbacks))
}
