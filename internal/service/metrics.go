package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"docanalytics/internal/model"
)

// Metrics are the domain counters exposed next to the HTTP metrics. A nil *Metrics records nothing.
type Metrics struct {
	documentsUploaded *prometheus.CounterVec
	searchDuration    prometheus.Histogram
}

// NewMetrics registers the domain metrics on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		documentsUploaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_uploaded_total",
				Help: "Total number of documents uploaded, by assigned category.",
			},
			[]string{"category"},
		),
		searchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_duration_seconds",
				Help:    "Time spent matching documents for a search query.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
		),
	}
	for _, c := range []prometheus.Collector{m.documentsUploaded, m.searchDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) uploaded(c model.Category) {
	if m == nil {
		return
	}
	m.documentsUploaded.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) searched(seconds float64) {
	if m == nil {
		return
	}
	m.searchDuration.Observe(seconds)
}
