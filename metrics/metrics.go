// Package metrics exposes Prometheus instrumentation for the step engine and
// the playback scheduler. A Collector implements both kruskal.Observer and
// playback.Observer and owns its own registry, so several engines (or tests)
// never collide on global registration.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/kruskalviz/core"
	"github.com/katalvlaran/kruskalviz/kruskal"
)

// Collector holds every metric for one engine/scheduler pair.
type Collector struct {
	registry *prometheus.Registry

	// Engine metrics
	GraphsLoaded prometheus.Counter
	GraphNodes   prometheus.Gauge
	GraphEdges   prometheus.Gauge
	Steps        *prometheus.CounterVec // labels: direction, verdict
	ReplayLength prometheus.Histogram
	Resets       prometheus.Counter

	// Playback metrics
	Playing      prometheus.Gauge
	Ticks        prometheus.Counter
	Stops        *prometheus.CounterVec // labels: reason
	TickInterval prometheus.Gauge
}

// NewCollector creates a collector whose metrics live under namespace and
// registers them on a fresh registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		GraphsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graphs_loaded_total",
			Help:      "Total number of graphs loaded into the engine",
		}),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Number of nodes in the loaded graph",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Number of edges in the loaded graph",
		}),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Total number of engine steps by direction and resulting edge state",
			},
			[]string{"direction", "verdict"},
		),
		ReplayLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "replay_edges",
			Help:      "Cursor position reached by replays and seeks",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Total number of run resets",
		}),
		Playing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playback_playing",
			Help:      "1 while automatic playback is running",
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_ticks_total",
			Help:      "Total number of playback ticks that issued a step",
		}),
		Stops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "playback_stops_total",
				Help:      "Total number of playback stops by reason",
			},
			[]string{"reason"},
		),
		TickInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playback_interval_seconds",
			Help:      "Current delay between playback steps",
		}),
	}

	registry.MustRegister(
		c.GraphsLoaded, c.GraphNodes, c.GraphEdges, c.Steps, c.ReplayLength, c.Resets,
		c.Playing, c.Ticks, c.Stops, c.TickInterval,
	)

	return c
}

// Registry returns the registry holding this collector's metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Loaded implements kruskal.Observer.
func (c *Collector) Loaded(_ string, nodes, edges int) {
	c.GraphsLoaded.Inc()
	c.GraphNodes.Set(float64(nodes))
	c.GraphEdges.Set(float64(edges))
}

// Stepped implements kruskal.Observer.
func (c *Collector) Stepped(dir kruskal.Direction, e core.Edge) {
	verdict := e.State.String()
	if dir == kruskal.Backward {
		verdict = core.Pending.String()
	}
	c.Steps.WithLabelValues(dir.String(), verdict).Inc()
}

// Replayed implements kruskal.Observer.
func (c *Collector) Replayed(target int) { c.ReplayLength.Observe(float64(target)) }

// Reset implements kruskal.Observer.
func (c *Collector) Reset() { c.Resets.Inc() }

// Started implements playback.Observer.
func (c *Collector) Started(interval time.Duration) {
	c.Playing.Set(1)
	c.TickInterval.Set(interval.Seconds())
}

// Ticked implements playback.Observer.
func (c *Collector) Ticked() { c.Ticks.Inc() }

// Stopped implements playback.Observer.
func (c *Collector) Stopped(reason string) {
	c.Playing.Set(0)
	c.Stops.WithLabelValues(reason).Inc()
}
