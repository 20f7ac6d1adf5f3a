package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"kycintake/internal/kyc"
)

// Submission outcomes reported on kyc_submissions_total.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics holds the intake counters. A nil *Metrics records nothing.
type Metrics struct {
	submissions    *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	uploadDuration *prometheus.HistogramVec
}

// NewMetrics creates the intake metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_submissions_total",
				Help: "KYC submissions by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_rejections_total",
				Help: "Rejected KYC submissions by error code.",
			},
			[]string{"code"},
		),
		uploadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kyc_upload_duration_seconds",
				Help:    "Duration of single document uploads to the content store.",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.submissions, m.rejections, m.uploadDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveSubmission records the outcome of one submission. err is the
// error returned to the caller, if any.
func (m *Metrics) ObserveSubmission(kind string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeAccepted
	switch {
	case err == nil:
	case kyc.IsValidation(err):
		outcome = OutcomeRejected
		m.rejections.WithLabelValues(string(kyc.CodeOf(err))).Inc()
	default:
		outcome = OutcomeFailed
	}
	m.submissions.WithLabelValues(kind, outcome).Inc()
}

// ObserveUpload matches kyc.UploadObserver.
func (m *Metrics) ObserveUpload(_ string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.uploadDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
