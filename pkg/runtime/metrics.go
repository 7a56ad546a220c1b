package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "vtl"
	metricsSubsystem = "runtime"
)

// metrics holds the Prometheus collectors of one runtime.
//
// Collected:
//   - vtl_runtime_commits_total: root commits
//   - vtl_runtime_component_renders_total: component render calls
//   - vtl_runtime_flush_passes_total: flush passes
//   - vtl_runtime_hydration_mismatches_total: repaired hydration mismatches
//   - vtl_runtime_roots: mounted roots
type metrics struct {
	commits    prometheus.Counter
	renders    prometheus.Counter
	passes     prometheus.Counter
	mismatches prometheus.Counter
	roots      prometheus.Gauge
}

// newMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered. Registering two runtimes on one registerer
// panics, as promauto does for any duplicate.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "commits_total",
			Help:      "Total number of root commits",
		}),
		renders: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "component_renders_total",
			Help:      "Total number of component render calls",
		}),
		passes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "flush_passes_total",
			Help:      "Total number of flush passes",
		}),
		mismatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "hydration_mismatches_total",
			Help:      "Total number of hydration mismatches repaired on the client",
		}),
		roots: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "roots",
			Help:      "Number of mounted roots",
		}),
	}
}
