// Package metrics exposes the engine's Prometheus instrumentation: append
// throughput, reconstruction cost, and per-query latency.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds the metrics an Engine reports. A nil *Collector is valid
// everywhere it's used (store.Engine treats it as "metrics disabled").
type Collector struct {
	AppendsTotal        prometheus.Counter
	ReconstructedBlocks prometheus.Counter
	ReconstructSeconds  prometheus.Histogram
	QuerySeconds        *prometheus.HistogramVec
}

// New builds a Collector and registers it against reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		AppendsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blocksim_appends_total",
			Help: "Total blocks appended to the engine.",
		}),
		ReconstructedBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blocksim_reconstructed_blocks_total",
			Help: "Total blocks replayed from disk during Open reconstruction.",
		}),
		ReconstructSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blocksim_reconstruct_seconds",
			Help:    "Wall-clock time spent replaying blockchain.bin on Open.",
			Buckets: prometheus.DefBuckets,
		}),
		QuerySeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blocksim_query_seconds",
			Help:    "Wall-clock time spent answering an analytical query, by name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),
	}
	reg.MustRegister(c.AppendsTotal, c.ReconstructedBlocks, c.ReconstructSeconds, c.QuerySeconds)
	return c
}

// ObserveQuery times fn under the named query's histogram. Safe to call on
// a nil *Collector.
func (c *Collector) ObserveQuery(name string, fn func()) {
	if c == nil {
		fn()
		return
	}
	timer := prometheus.NewTimer(c.QuerySeconds.WithLabelValues(name))
	defer timer.ObserveDuration()
	fn()
}

func (c *Collector) IncAppend() {
	if c != nil {
		c.AppendsTotal.Inc()
	}
}

func (c *Collector) AddReconstructed(n int) {
	if c != nil {
		c.ReconstructedBlocks.Add(float64(n))
	}
}

func (c *Collector) ObserveReconstructSeconds(seconds float64) {
	if c != nil {
		c.ReconstructSeconds.Observe(seconds)
	}
}
