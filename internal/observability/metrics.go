package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for one conversion run. The
// registry is private to the process: a one-shot run has nothing to
// scrape, so values are gathered at the end and emitted as the completion
// summary instead.
type Metrics struct {
	registry *prometheus.Registry

	RecordsParsed      *prometheus.CounterVec // label: table={reference,registration}
	RecordsWritten     prometheus.Counter
	UnknownModels      prometheus.Counter
	UnknownRegistrants prometheus.Counter
	DownloadBytes      prometheus.Counter
	RunDuration        prometheus.Gauge
}

// NewMetrics creates and registers all run metrics on a fresh registry.
// Safe to call from multiple tests; no global registry is touched.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RecordsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faa2etc",
			Name:      "records_parsed_total",
			Help:      "Rows parsed from each source table.",
		}, []string{"table"}),
		RecordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "faa2etc",
			Name:      "records_written_total",
			Help:      "Output rows written to the sink.",
		}),
		UnknownModels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "faa2etc",
			Name:      "unknown_model_codes_total",
			Help:      "Registrations whose model code had no reference entry.",
		}),
		UnknownRegistrants: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "faa2etc",
			Name:      "unknown_registrant_types_total",
			Help:      "Registrations with a blank or unassigned registrant-type code.",
		}),
		DownloadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "faa2etc",
			Name:      "download_bytes_total",
			Help:      "Bytes downloaded from the registry endpoint.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "faa2etc",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the conversion run.",
		}),
	}

	m.registry.MustRegister(
		m.RecordsParsed,
		m.RecordsWritten,
		m.UnknownModels,
		m.UnknownRegistrants,
		m.DownloadBytes,
		m.RunDuration,
	)

	return m
}

// Summary gathers the registry and returns current values keyed by fully
// qualified metric name. Labeled series are summed; a vector with no
// observed label values is absent.
func (m *Metrics) Summary() map[string]float64 {
	families, err := m.registry.Gather()
	if err != nil {
		return nil
	}

	out := make(map[string]float64, len(families))
	for _, family := range families {
		var total float64
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				total += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				total += metric.GetGauge().GetValue()
			}
		}
		out[family.GetName()] = total
	}
	return out
}
