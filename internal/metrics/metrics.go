// Package metrics records scan outcomes as Prometheus metrics and writes
// them to a node_exporter textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rotisserie/eris"

	"github.com/sells-group/location-screen/internal/classify"
	"github.com/sells-group/location-screen/internal/screen"
)

const namespace = "location_screen"

// Rules are the reason label values, pre-populated so every series exists.
var Rules = []string{"business_type", "bar_no_daytime", "closes_early", "night_indicators", "night_only_hours"}

// Metrics holds the scan collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	scanned      prometheus.Counter
	flagged      prometheus.Counter
	failures     prometheus.Counter
	reasons      *prometheus.CounterVec
	lastDuration prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "locations_scanned_total",
			Help:      "Total locations examined.",
		}),
		flagged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "locations_flagged_total",
			Help:      "Total locations flagged as unsuitable.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classification_failures_total",
			Help:      "Total locations skipped because classification failed.",
		}),
		reasons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reasons_total",
			Help:      "Total reasons emitted, by rule.",
		}, []string{"rule"}),
		lastDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall-clock duration of the most recent scan.",
		}),
	}

	m.registry.MustRegister(m.scanned, m.flagged, m.failures, m.reasons, m.lastDuration)
	for _, rule := range Rules {
		m.reasons.WithLabelValues(rule)
	}
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Observe adds one scan result.
func (m *Metrics) Observe(res *screen.Result) {
	if res == nil {
		return
	}
	m.scanned.Add(float64(res.Scanned))
	m.failures.Add(float64(len(res.Failures)))
	for _, v := range res.Flagged {
		m.flagged.Inc()
		for _, reason := range v.Reasons {
			m.reasons.WithLabelValues(classify.RuleOf(reason)).Inc()
		}
	}
	m.lastDuration.Set(res.Duration.Seconds())
}

// WriteTextfile writes all metrics in the text exposition format. The
// write is atomic so a scraping node_exporter never sees a partial file.
func (m *Metrics) WriteTextfile(path string) error {
	return eris.Wrap(prometheus.WriteToTextfile(path, m.registry), "metrics: write textfile")
}
