package metrics

import "time"

// DequeueEvent describes a patient leaving the emergency queue.
type DequeueEvent struct {
	PatientID     string
	AcuityLevel   int
	WaitMinutes   float64
	PriorityScore float64
	Time          time.Time
}

// ScheduleRunEvent describes one optimization run of the OR or roster engine.
type ScheduleRunEvent struct {
	// Component is "or_scheduler" or "roster_optimizer".
	Component string
	// Status is the SolveStatus string of the run.
	Status string
	// Objective is the achieved objective value: makespan minutes for the
	// OR scheduler, total assignments for the roster.
	Objective float64
	Relaxed   bool
	Duration  time.Duration
	Time      time.Time
}

// Sink records scheduling events for observability purposes.
type Sink interface {
	RecordQueueDepth(depth int) error
	RecordDequeue(ev DequeueEvent) error
	RecordScheduleRun(ev ScheduleRunEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordQueueDepth(int) error               { return nil }
func (NopSink) RecordDequeue(DequeueEvent) error         { return nil }
func (NopSink) RecordScheduleRun(ScheduleRunEvent) error { return nil }
