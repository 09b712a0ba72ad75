// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for document verification.
type Metrics struct {
	// Identified documents by document type and status
	Documents *prometheus.CounterVec

	// Overall verdicts by policy and verdict
	Verdicts *prometheus.CounterVec

	// Per-document read and identify latency by reader
	IdentifyLatency *prometheus.HistogramVec
}

// New creates a Metrics instance registered with reg. A nil reg registers
// with the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Documents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idmatch_documents_total",
			Help: "Total documents processed by document type and status",
		}, []string{"type", "status"}), // status: "identified", "unknown", "unreadable"

		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idmatch_verdicts_total",
			Help: "Total overall comparison verdicts by policy and verdict",
		}, []string{"policy", "verdict"}),

		IdentifyLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idmatch_identify_duration_seconds",
			Help:    "Duration of reading and identifying one source",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"reader"}),
	}
}

// IncrementDocument records one processed document.
func (m *Metrics) IncrementDocument(docType, status string) {
	if m != nil {
		m.Documents.WithLabelValues(docType, status).Inc()
	}
}

// IncrementVerdict records an overall verdict.
func (m *Metrics) IncrementVerdict(policy, verdict string) {
	if m != nil {
		m.Verdicts.WithLabelValues(policy, verdict).Inc()
	}
}

// ObserveIdentifyLatency records the time spent on one source.
func (m *Metrics) ObserveIdentifyLatency(reader string, d time.Duration) {
	if m != nil {
		m.IdentifyLatency.WithLabelValues(reader).Observe(d.Seconds())
	}
}
