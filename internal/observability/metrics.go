package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	adminRequestsTotal    *prometheus.CounterVec
	adminLatencySeconds   *prometheus.HistogramVec
	adminErrorsTotal      *prometheus.CounterVec
	submissionsTotal      *prometheus.CounterVec
	submissionLatency     prometheus.Histogram
	evidenceRejectedTotal *prometheus.CounterVec
	evidenceStoredTotal   prometheus.Counter
	evidenceLatency       prometheus.Histogram
	directoryReadsTotal   *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inspection_submissions_total",
			Help: "Inspection submissions grouped by outcome.",
		}, []string{"outcome"})

		submissionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "inspection_submission_latency_seconds",
			Help:    "End-to-end latency of the submission pipeline.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		evidenceRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evidence_rejected_total",
			Help: "Evidence files rejected before or during upload.",
		}, []string{"reason"})

		evidenceStoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evidence_stored_total",
			Help: "Evidence files successfully stored in blob storage.",
		})

		evidenceLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "evidence_batch_latency_seconds",
			Help:    "Latency of evidence upload batches.",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		directoryReadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_reads_total",
			Help: "Directory projections grouped by source (cache, store, degraded).",
		}, []string{"source"})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			submissionsTotal,
			submissionLatency,
			evidenceRejectedTotal,
			evidenceStoredTotal,
			evidenceLatency,
			directoryReadsTotal,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// Submissions exposes the submission outcome counter.
func Submissions() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsTotal
}

// SubmissionLatency exposes the submission pipeline histogram.
func SubmissionLatency() prometheus.Histogram {
	RegisterMetrics()
	return submissionLatency
}

// EvidenceRejected exposes the evidence rejection counter.
func EvidenceRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return evidenceRejectedTotal
}

// EvidenceStored exposes the stored evidence counter.
func EvidenceStored() prometheus.Counter {
	RegisterMetrics()
	return evidenceStoredTotal
}

// EvidenceLatency exposes the evidence batch histogram.
func EvidenceLatency() prometheus.Histogram {
	RegisterMetrics()
	return evidenceLatency
}

// DirectoryReads exposes the directory read counter.
func DirectoryReads() *prometheus.CounterVec {
	RegisterMetrics()
	return directoryReadsTotal
}
