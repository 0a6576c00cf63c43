package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/formflow/pkg/form"
)

const namespace = "formflow"

// Recorder exports form controller events as Prometheus metrics.
type Recorder struct {
	RemoteChecksTotal   *prometheus.CounterVec
	RemoteCheckDuration *prometheus.HistogramVec
	SubmissionsTotal    *prometheus.CounterVec
	SubmissionDuration  *prometheus.HistogramVec
	SubmissionsRefused  *prometheus.CounterVec
}

var _ form.Observer = (*Recorder)(nil)

// New registers the form metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		RemoteChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_checks_total",
				Help:      "Total number of remote field checks by result",
			},
			[]string{"form", "field", "result"},
		),
		RemoteCheckDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_check_duration_seconds",
				Help:      "Remote field check latency distribution",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"form", "field"},
		),
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Total number of form submissions by outcome",
			},
			[]string{"form", "outcome"},
		),
		SubmissionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "submission_duration_seconds",
				Help:      "Form submission latency distribution",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"form"},
		),
		SubmissionsRefused: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_refused_total",
				Help:      "Total number of submit attempts refused before sending",
			},
			[]string{"form", "reason"},
		),
	}
}

func (r *Recorder) RemoteCheck(formName, field, result string, took time.Duration) {
	r.RemoteChecksTotal.WithLabelValues(formName, field, result).Inc()
	// Stale results still measure server latency.
	r.RemoteCheckDuration.WithLabelValues(formName, field).Observe(took.Seconds())
}

func (r *Recorder) Submitted(formName string, kind form.OutcomeKind, took time.Duration) {
	r.SubmissionsTotal.WithLabelValues(formName, string(kind)).Inc()
	r.SubmissionDuration.WithLabelValues(formName).Observe(took.Seconds())
}

func (r *Recorder) SubmitRefused(formName string, reason error) {
	r.SubmissionsRefused.WithLabelValues(formName, refusalReason(reason)).Inc()
}

func refusalReason(err error) string {
	switch {
	case errors.Is(err, form.ErrNotSubmittable):
		return "not_submittable"
	case errors.Is(err, form.ErrSubmissionInProgress):
		return "in_progress"
	default:
		return "other"
	}
}
