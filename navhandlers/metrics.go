package navhandlers

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vitalvas/navkit/navmux"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "navkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Metrics is a navigation middleware that records Prometheus metrics:
//
//   - navkit_navigations_total: counter by route and status
//     (success, error, rejected)
//   - navkit_navigation_duration_seconds: histogram by route
//   - navkit_navigation_errors_total: counter of terminal response errors
//     by route and error key
//
// The route label is the template of the matched route, which keeps
// label cardinality bounded.
type Metrics struct {
	navigations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	errors      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with
// cfg.Registry. Collectors that are already registered there are reused,
// so several routers can share one registry.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = "navkit"
	}
	if cfg.Buckets == nil {
		cfg.Buckets = prometheus.DefBuckets
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}

	navigations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "navigations_total",
		Help:        "Total number of dispatched navigations",
		ConstLabels: cfg.ConstLabels,
	}, []string{"route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "navigation_duration_seconds",
		Help:        "Navigation handler chain duration in seconds",
		ConstLabels: cfg.ConstLabels,
		Buckets:     cfg.Buckets,
	}, []string{"route"})

	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "navigation_errors_total",
		Help:        "Total number of navigations ending with a terminal error",
		ConstLabels: cfg.ConstLabels,
	}, []string{"route", "key"})

	var err error
	m := &Metrics{}
	if m.navigations, err = register(cfg.Registry, navigations); err != nil {
		return nil, err
	}
	if m.duration, err = register(cfg.Registry, duration); err != nil {
		return nil, err
	}
	if m.errors, err = register(cfg.Registry, errs); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, or returns the collector already registered
// under the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	var zero C
	return zero, err
}

// ServeNavigation implements navmux.Handler.
func (m *Metrics) ServeNavigation(req *navmux.Request, res *navmux.Response, next navmux.Next) error {
	route := routeLabel(req)

	start := time.Now()
	err := next()
	m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case res.Err() != nil:
		status = "rejected"
		m.errors.WithLabelValues(route, navmux.ErrorKey(res.Err())).Inc()
	}
	m.navigations.WithLabelValues(route, status).Inc()

	return err
}
