package erqueue

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/swasthya/scheduling/core/logger"
	"github.com/swasthya/scheduling/core/metrics"
	"github.com/swasthya/scheduling/core/model"
)

// MinAcuity and MaxAcuity bound the ESI triage scale, 1 being most severe.
const (
	MinAcuity = 1
	MaxAcuity = 5
)

// Queue holds the waiting emergency patients. It is long-lived shared state:
// all operations serialize on an internal mutex because Dequeue performs a
// global recompute-and-sort that must not interleave with mutation.
type Queue struct {
	mu       sync.Mutex
	cfg      Config
	log      logger.Logger
	sink     metrics.Sink
	now      func() time.Time
	patients []*model.WaitingPatient
}

// QueueStatus is a point-in-time snapshot of the queue, computed on demand.
type QueueStatus struct {
	TotalPatients  int         `json:"total_patients"`
	ByAcuity       map[int]int `json:"by_acuity"`
	AvgWaitMinutes float64     `json:"average_wait_minutes"`
	MaxWaitMinutes float64     `json:"max_wait_minutes"`
}

// New creates an empty queue. A nil sink disables metrics.
func New(cfg Config, log logger.Logger, sink metrics.Sink) *Queue {
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Queue{cfg: cfg, log: log, sink: sink, now: time.Now}
}

// Enqueue admits a patient. A zero arrival time is recorded as now.
func (q *Queue) Enqueue(id string, acuity int, arrival time.Time) error {
	if id == "" {
		return fmt.Errorf("%w: patient id is required", model.ErrInvalidInput)
	}
	if acuity < MinAcuity || acuity > MaxAcuity {
		return fmt.Errorf("%w: acuity level %d outside [%d,%d]", model.ErrInvalidInput, acuity, MinAcuity, MaxAcuity)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.patients {
		if p.ID == id {
			return fmt.Errorf("%w: patient %s already queued", model.ErrInvalidInput, id)
		}
	}
	if arrival.IsZero() {
		arrival = q.now()
	}
	q.patients = append(q.patients, &model.WaitingPatient{
		ID:          id,
		AcuityLevel: acuity,
		ArrivalTime: arrival,
	})
	q.log.Infof("patient %s added to ER queue (acuity %d, %d waiting)", id, acuity, len(q.patients))
	if err := q.sink.RecordQueueDepth(len(q.patients)); err != nil {
		q.log.Warnf("queue depth metric: %v", err)
	}
	return nil
}

// Dequeue recomputes every resident's priority score, removes the patient
// with the lowest score and returns it with its wait minutes filled in.
// Ties break on higher severity, then earlier arrival, then ID.
func (q *Queue) Dequeue() (*model.WaitingPatient, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.patients) == 0 {
		return nil, model.ErrEmptyQueue
	}

	now := q.now()
	for _, p := range q.patients {
		p.WaitMinutes = now.Sub(p.ArrivalTime).Minutes()
		p.PriorityScore = float64(p.AcuityLevel)*q.cfg.AcuityWeight - p.WaitMinutes*q.cfg.WaitWeight
	}
	// Equal scores resolve in favor of the more severe patient, then the
	// longer wait, so the crossover happens strictly after the tie point.
	sort.SliceStable(q.patients, func(i, j int) bool {
		a, b := q.patients[i], q.patients[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore < b.PriorityScore
		}
		if a.AcuityLevel != b.AcuityLevel {
			return a.AcuityLevel < b.AcuityLevel
		}
		if !a.ArrivalTime.Equal(b.ArrivalTime) {
			return a.ArrivalTime.Before(b.ArrivalTime)
		}
		return a.ID < b.ID
	})

	next := q.patients[0]
	q.patients = q.patients[1:]

	q.log.Infof("next patient %s (acuity %d, waited %.0f min, score %.1f)",
		next.ID, next.AcuityLevel, next.WaitMinutes, next.PriorityScore)
	if err := q.sink.RecordDequeue(metrics.DequeueEvent{
		PatientID:     next.ID,
		AcuityLevel:   next.AcuityLevel,
		WaitMinutes:   next.WaitMinutes,
		PriorityScore: next.PriorityScore,
		Time:          now,
	}); err != nil {
		q.log.Warnf("dequeue metric: %v", err)
	}
	if err := q.sink.RecordQueueDepth(len(q.patients)); err != nil {
		q.log.Warnf("queue depth metric: %v", err)
	}
	return next, nil
}

// Reprioritize updates a resident's acuity in place. The arrival time is
// untouched so accumulated wait credit is preserved.
func (q *Queue) Reprioritize(id string, acuity int) error {
	if acuity < MinAcuity || acuity > MaxAcuity {
		return fmt.Errorf("%w: acuity level %d outside [%d,%d]", model.ErrInvalidInput, acuity, MinAcuity, MaxAcuity)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.patients {
		if p.ID == id {
			old := p.AcuityLevel
			p.AcuityLevel = acuity
			q.log.Infof("patient %s acuity updated: %d -> %d", id, old, acuity)
			return nil
		}
	}
	return fmt.Errorf("%w: patient %s", model.ErrNotFound, id)
}

// Status computes queue statistics at call time.
func (q *Queue) Status() QueueStatus {
	q.mu.Lock()
	defer q.mu.Unlock()

	st := QueueStatus{ByAcuity: make(map[int]int)}
	st.TotalPatients = len(q.patients)
	if st.TotalPatients == 0 {
		return st
	}

	now := q.now()
	var sum float64
	for _, p := range q.patients {
		wait := now.Sub(p.ArrivalTime).Minutes()
		sum += wait
		if wait > st.MaxWaitMinutes {
			st.MaxWaitMinutes = wait
		}
		st.ByAcuity[p.AcuityLevel]++
	}
	st.AvgWaitMinutes = sum / float64(st.TotalPatients)
	return st
}

// Len returns the number of waiting patients.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.patients)
}
