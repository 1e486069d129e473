// Package metrics exposes prometheus collectors for trending fetches.
package metrics

import (
	"net/http"

	"github.com/abdulachik/ghtrending/internal/trending"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ghtrending_fetch_total",
		Help: "Trending page fetches by time range and outcome",
	}, []string{"since", "outcome"})
	FetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ghtrending_fetch_duration_seconds",
		Help:    "Time spent fetching and extracting one trending page",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
	}, []string{"since"})
	EntriesExtracted = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ghtrending_entries_extracted",
		Help: "Entries kept by the most recent fetch",
	}, []string{"since"})
	EntriesRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ghtrending_entries_rejected_total",
		Help: "Entry blocks dropped for lacking a name link",
	}, []string{"since"})
)

func init() {
	prometheus.MustRegister(
		FetchTotal,
		FetchDuration,
		EntriesExtracted,
		EntriesRejected,
	)
}

// Recorder feeds service observations into the collectors.
type Recorder struct{}

// NewRecorder returns a Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe implements trending.Observer.
func (Recorder) Observe(o trending.Observation) {
	since := o.Since.String()

	FetchTotal.WithLabelValues(since, o.Outcome.String()).Inc()
	FetchDuration.WithLabelValues(since).Observe(o.Duration.Seconds())

	if o.Outcome == trending.FailureNone {
		EntriesExtracted.WithLabelValues(since).Set(float64(o.Kept))
	}
	if o.Rejected > 0 {
		EntriesRejected.WithLabelValues(since).Add(float64(o.Rejected))
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
