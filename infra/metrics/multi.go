package metrics

import coremetrics "github.com/swasthya/scheduling/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordQueueDepth forwards to all sinks, returning the first error.
func (m *MultiSink) RecordQueueDepth(depth int) error {
	for _, s := range m.Sinks {
		if err := s.RecordQueueDepth(depth); err != nil {
			return err
		}
	}
	return nil
}

// RecordDequeue forwards to all sinks, returning the first error.
func (m *MultiSink) RecordDequeue(ev coremetrics.DequeueEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordDequeue(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordScheduleRun forwards to all sinks, returning the first error.
func (m *MultiSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordScheduleRun(ev); err != nil {
			return err
		}
	}
	return nil
}
