// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics counts ingestion outcomes in a private Prometheus
// registry. The CLI is short-lived, so the registry is written to a
// node-exporter textfile instead of being served.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "medmaps"

// Outcome labels.
const (
	OutcomeIngested    = "ingested"
	OutcomeDuplicate   = "duplicate"
	OutcomeFailed      = "failed"
	OutcomeUnavailable = "unavailable"
)

// Recorder holds the ingestion collectors.
type Recorder struct {
	registry *prometheus.Registry
	items    *prometheus.CounterVec
	nodes    prometheus.Histogram
	duration prometheus.Histogram
	catalog  prometheus.Gauge
	lastRun  prometheus.Gauge
}

// New registers the collectors in a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "items_total",
			Help:      "Source files processed, by format and outcome.",
		}, []string{"format", "outcome", "reason"}),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "map_nodes",
			Help:      "Node count of ingested maps.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a batch run.",
			Buckets:   prometheus.DefBuckets,
		}),
		catalog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "maps",
			Help:      "Entries in the catalog index after the last run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last batch finished.",
		}),
	}
	r.registry.MustRegister(r.items, r.nodes, r.duration, r.catalog, r.lastRun)
	return r
}

// Item counts one processed file. reason is empty except for failures.
func (r *Recorder) Item(format, outcome, reason string) {
	if r == nil {
		return
	}
	r.items.WithLabelValues(format, outcome, reason).Inc()
}

// Nodes observes the node count of an ingested map.
func (r *Recorder) Nodes(n int) {
	if r == nil {
		return
	}
	r.nodes.Observe(float64(n))
}

// Batch records the end of a batch run.
func (r *Recorder) Batch(seconds float64, catalogSize int, finishedUnix float64) {
	if r == nil {
		return
	}
	r.duration.Observe(seconds)
	r.catalog.Set(float64(catalogSize))
	r.lastRun.Set(finishedUnix)
}

// Registry exposes the registry for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes the registry in text exposition format to path,
// atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
