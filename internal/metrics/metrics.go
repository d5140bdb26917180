package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every freemodels collector. It is separate from the default
// registry so a textfile dump carries no Go runtime noise.
var Registry = prometheus.NewRegistry()

var (
	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freemodels",
			Subsystem: "catalog",
			Name:      "fetch_total",
			Help:      "Total number of catalog fetches by outcome",
		},
		[]string{"outcome"},
	)

	fetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "freemodels",
			Subsystem: "catalog",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of catalog fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	records = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "freemodels",
			Subsystem: "catalog",
			Name:      "records",
			Help:      "Catalog records seen in the last run",
		},
		[]string{"kind"},
	)
)

// Fetch outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport"
	OutcomeStatus    = "status"
	OutcomeDecode    = "decode"
	OutcomeShape     = "shape"
)

func init() {
	Registry.MustRegister(fetchTotal, fetchDuration, records)
}

// ObserveFetch records one catalog fetch.
func ObserveFetch(outcome string, dur time.Duration) {
	if outcome == "" {
		outcome = "unspecified"
	}
	fetchTotal.WithLabelValues(outcome).Inc()
	fetchDuration.Observe(dur.Seconds())
}

// SetRecords records how many catalog entries were listed and how many matched the filter.
func SetRecords(listed, matched int) {
	records.WithLabelValues("listed").Set(float64(listed))
	records.WithLabelValues("matched").Set(float64(matched))
}

// WriteTextfile dumps Registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("empty metrics path")
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
