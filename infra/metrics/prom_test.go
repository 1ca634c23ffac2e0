package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/swasthya/scheduling/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	ps := sink.(*PromSink)

	require.NoError(t, sink.RecordQueueDepth(7))
	require.Equal(t, 7.0, testutil.ToFloat64(ps.queueDepth))

	require.NoError(t, sink.RecordDequeue(coremetrics.DequeueEvent{
		PatientID:   "p1",
		AcuityLevel: 2,
		WaitMinutes: 42,
		Time:        time.Now(),
	}))
	require.Equal(t, 1.0, testutil.ToFloat64(ps.dequeues.WithLabelValues("2")))

	require.NoError(t, sink.RecordScheduleRun(coremetrics.ScheduleRunEvent{
		Component: "or_scheduler",
		Status:    "optimal",
		Objective: 360,
		Duration:  250 * time.Millisecond,
		Time:      time.Now(),
	}))
	require.Equal(t, 1.0, testutil.ToFloat64(ps.scheduleRuns.WithLabelValues("or_scheduler", "optimal")))
}

// Building a second sink on the same registry must reuse the existing
// collectors instead of failing.
func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, first.RecordQueueDepth(3))
	require.NoError(t, second.RecordQueueDepth(5))
	require.Equal(t, 5.0, testutil.ToFloat64(first.(*PromSink).queueDepth))
}

func TestMultiSinkFanout(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	multi := NewMultiSink(prom, coremetrics.NopSink{})

	require.NoError(t, multi.RecordQueueDepth(4))
	require.Equal(t, 4.0, testutil.ToFloat64(prom.(*PromSink).queueDepth))
}
