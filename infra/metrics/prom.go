package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/swasthya/scheduling/core/metrics"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	queueDepth    prometheus.Gauge
	dequeues      *prometheus.CounterVec
	waitMinutes   *prometheus.HistogramVec
	scheduleRuns  *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The Prometheus server is started separately.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "er_queue_depth",
		Help: "Number of patients waiting in the ER queue",
	})
	dequeues := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "er_dequeues_total",
		Help: "Total number of patients dequeued, by acuity level",
	}, []string{"acuity"})
	waitMinutes := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "er_wait_minutes",
		Help:    "Wait time of dequeued patients in minutes",
		Buckets: []float64{5, 15, 30, 60, 120, 240, 480},
	}, []string{"acuity"})
	scheduleRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_runs_total",
		Help: "Total number of optimization runs, by component and status",
	}, []string{"component", "status"})
	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_solve_seconds",
		Help:    "Wall-clock time of one optimization run",
		Buckets: prometheus.DefBuckets,
	}, []string{"component"})

	s := &PromSink{
		queueDepth:    queueDepth,
		dequeues:      dequeues,
		waitMinutes:   waitMinutes,
		scheduleRuns:  scheduleRuns,
		solveDuration: solveDuration,
	}
	if err := register(reg, queueDepth, func(c prometheus.Collector) { s.queueDepth = c.(prometheus.Gauge) }); err != nil {
		return nil, err
	}
	if err := register(reg, dequeues, func(c prometheus.Collector) { s.dequeues = c.(*prometheus.CounterVec) }); err != nil {
		return nil, err
	}
	if err := register(reg, waitMinutes, func(c prometheus.Collector) { s.waitMinutes = c.(*prometheus.HistogramVec) }); err != nil {
		return nil, err
	}
	if err := register(reg, scheduleRuns, func(c prometheus.Collector) { s.scheduleRuns = c.(*prometheus.CounterVec) }); err != nil {
		return nil, err
	}
	if err := register(reg, solveDuration, func(c prometheus.Collector) { s.solveDuration = c.(*prometheus.HistogramVec) }); err != nil {
		return nil, err
	}
	return s, nil
}

// register tolerates double registration by reusing the existing collector,
// the same way repeated sink construction is handled elsewhere.
func register(reg prometheus.Registerer, c prometheus.Collector, replace func(prometheus.Collector)) error {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			replace(are.ExistingCollector)
			return nil
		}
		return err
	}
	return nil
}

// RecordQueueDepth sets the queue depth gauge.
func (s *PromSink) RecordQueueDepth(depth int) error {
	s.queueDepth.Set(float64(depth))
	return nil
}

// RecordDequeue increments the dequeue counter and observes the wait time.
func (s *PromSink) RecordDequeue(ev coremetrics.DequeueEvent) error {
	acuity := strconv.Itoa(ev.AcuityLevel)
	s.dequeues.WithLabelValues(acuity).Inc()
	s.waitMinutes.WithLabelValues(acuity).Observe(ev.WaitMinutes)
	return nil
}

// RecordScheduleRun counts the run and observes its solve time.
func (s *PromSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	s.scheduleRuns.WithLabelValues(ev.Component, ev.Status).Inc()
	s.solveDuration.WithLabelValues(ev.Component).Observe(ev.Duration.Seconds())
	return nil
}
