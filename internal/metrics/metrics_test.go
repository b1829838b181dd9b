package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordOutcome("notified")
	m.RecordOutcome("notified")
	m.RecordOutcome("invalid_input")
	m.RecordEvent("account.registered")
	m.ObserveSubmission(time.Now().Add(-time.Second))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("notified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("invalid_input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountEvents.WithLabelValues("account.registered")))

	count, err := testutil.GatherAndCount(reg, "joinform_submission_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
