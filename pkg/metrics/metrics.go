package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "proxysieve"

// Metrics holds the counters for a single run.  A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry     *prometheus.Registry
	Fetches      *prometheus.CounterVec
	Probes       *prometheus.CounterVec
	ProbeLatency prometheus.Histogram
	KeptNodes    prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "source fetches by outcome",
		}, []string{"outcome"}),
		Probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probe_total",
			Help:      "node probes by outcome",
		}, []string{"outcome"}),
		ProbeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_latency_ms",
			Help:      "mean tcp connect latency of reachable nodes, in milliseconds",
			Buckets:   []float64{1, 5, 10, 20, 30, 50, 100, 200, 500, 1000, 2000, 5000},
		}),
		KeptNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kept_nodes",
			Help:      "nodes written to the output after filtering",
		}),
	}
	m.Registry.MustRegister(m.Fetches, m.Probes, m.ProbeLatency, m.KeptNodes)
	return m
}

func (m *Metrics) RecordFetch(outcome string) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordProbe(outcome string, latencyMs *float64) {
	if m == nil {
		return
	}
	m.Probes.WithLabelValues(outcome).Inc()
	if latencyMs != nil {
		m.ProbeLatency.Observe(*latencyMs)
	}
}

func (m *Metrics) SetKept(count int) {
	if m == nil {
		return
	}
	m.KeptNodes.Set(float64(count))
}

// WriteTextfile dumps the registry in the text exposition format, for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return errors.Wrapf(prometheus.WriteToTextfile(path, m.Registry), "unable to write metrics to %s", path)
}
