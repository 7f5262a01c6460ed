package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CertificateRequests counts issuance requests by terminal outcome:
	// "created", "reused", "rejected_not_found", "rejected_incomplete",
	// "rejected_revoked", "failed".
	CertificateRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certificate_issuance_requests_total",
			Help: "Total number of certificate issuance requests by outcome",
		},
		[]string{"outcome"},
	)

	CertificateCreateConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "certificate_create_conflicts_total",
			Help: "Certificate record inserts that lost a uniqueness race and re-read the winner",
		},
	)

	ArtifactRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certificate_artifact_renders_total",
			Help: "Certificate PDF renders, by reason (new, regenerated) and result",
		},
		[]string{"reason", "result"},
	)

	ArtifactRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "certificate_artifact_render_duration_seconds",
			Help:    "Time spent rendering and storing a certificate PDF",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	ArtifactsMissing = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "certificate_artifacts_missing",
			Help: "Active certificates whose PDF was missing at the last audit",
		},
	)
)
