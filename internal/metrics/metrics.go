package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the join form.
// Tracks submission outcomes, account events and submission duration.
type Metrics struct {
	Outcomes           *prometheus.CounterVec
	AccountEvents      *prometheus.CounterVec
	SubmissionDuration prometheus.Histogram
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "joinform_submissions_total",
			Help: "Join form submissions by terminal state",
		}, []string{"state"}),
		AccountEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "joinform_account_events_total",
			Help: "Account lifecycle events published on the bus",
		}, []string{"topic"}),
		SubmissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "joinform_submission_duration_seconds",
			Help:    "Duration of join form submissions including notification",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// RecordOutcome counts a submission that ended in state.
func (m *Metrics) RecordOutcome(state string) {
	m.Outcomes.WithLabelValues(state).Inc()
}

// RecordEvent counts an account event.
func (m *Metrics) RecordEvent(topic string) {
	m.AccountEvents.WithLabelValues(topic).Inc()
}

// ObserveSubmission records the duration of a submission.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSubmission(start time.Time) {
	m.SubmissionDuration.Observe(time.Since(start).Seconds())
}
