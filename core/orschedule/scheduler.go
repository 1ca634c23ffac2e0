// Package orschedule assigns surgical cases to interchangeable operating
// rooms within a daily horizon, minimizing the makespan. Non-overlap is
// enforced per room: cases in different rooms never block each other.
package orschedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/swasthya/scheduling/core/duration"
	"github.com/swasthya/scheduling/core/logger"
	"github.com/swasthya/scheduling/core/metrics"
	"github.com/swasthya/scheduling/core/model"
)

// Scheduler plans one batch of cases per call. It holds no cross-run state
// and is safe for concurrent independent runs.
type Scheduler struct {
	cfg  Config
	est  *duration.Estimator
	log  logger.Logger
	sink metrics.Sink
}

// Horizon optionally overrides the configured room opening window, "HH:MM".
type Horizon struct {
	Open  string
	Close string
}

// Metrics summarizes a scheduling run.
type Metrics struct {
	TotalCases       int     `json:"total_cases"`
	MakespanMinutes  int     `json:"makespan_minutes"`
	UtilizationPct   float64 `json:"utilization_percentage"`
	SolverStatus     string  `json:"solver_status"`
	SolveTimeSeconds float64 `json:"solver_time_seconds"`
}

// Result is a complete schedule with its quality metrics.
type Result struct {
	RunID    string                `json:"run_id"`
	Status   model.SolveStatus     `json:"status"`
	Schedule []model.ScheduledCase `json:"schedule"`
	Metrics  Metrics               `json:"metrics"`
}

// New creates a scheduler. A nil sink disables metrics.
func New(cfg Config, est *duration.Estimator, log logger.Logger, sink metrics.Sink) *Scheduler {
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Scheduler{cfg: cfg, est: est, log: log, sink: sink}
}

type block struct {
	caseIdx int
	minutes int
}

// Schedule assigns every case to a room and start time, or fails without
// returning a partial schedule. The run honors the configured solver budget
// and any earlier deadline on ctx.
func (s *Scheduler) Schedule(ctx context.Context, cases []model.SurgicalCase, rooms int, hz *Horizon) (*Result, error) {
	if rooms < 1 || rooms > MaxRooms {
		return nil, fmt.Errorf("%w: room count %d outside [1,%d]", model.ErrInvalidInput, rooms, MaxRooms)
	}
	openStr, closeStr := s.cfg.OpenTime, s.cfg.CloseTime
	if hz != nil {
		if hz.Open != "" {
			openStr = hz.Open
		}
		if hz.Close != "" {
			closeStr = hz.Close
		}
	}
	openMin, err := model.ParseClock(openStr)
	if err != nil {
		return nil, err
	}
	closeMin, err := model.ParseClock(closeStr)
	if err != nil {
		return nil, err
	}
	horizon := closeMin - openMin
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: horizon %s-%s is empty", model.ErrInvalidInput, openStr, closeStr)
	}

	res := &Result{RunID: uuid.NewString(), Status: model.StatusOptimal}
	if len(cases) == 0 {
		res.Metrics.SolverStatus = res.Status.String()
		return res, nil
	}

	started := time.Now()
	deadline := started.Add(time.Duration(s.cfg.SolverBudgetSeconds) * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	// Duration prediction plus turnover; everything below works on blocks.
	durations := make([]int, len(cases))
	blocks := make([]block, len(cases))
	for i, c := range cases {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: case %d has no id", model.ErrInvalidInput, i)
		}
		// Zero complexity means unset; the estimator substitutes its default.
		if c.ComplexityScore < 0 || c.ComplexityScore > 5 {
			return nil, fmt.Errorf("%w: case %s complexity %d outside [0,5]", model.ErrInvalidInput, c.ID, c.ComplexityScore)
		}
		durations[i] = s.est.Predict(c)
		blocks[i] = block{caseIdx: i, minutes: durations[i] + s.cfg.TurnoverMinutes}
		if blocks[i].minutes > horizon {
			return nil, fmt.Errorf("%w: case %s needs %d min, horizon is %d", model.ErrInfeasible, c.ID, blocks[i].minutes, horizon)
		}
	}

	// Longest block first; ID tie-break keeps the makespan reproducible
	// across runs of the same batch.
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].minutes != blocks[j].minutes {
			return blocks[i].minutes > blocks[j].minutes
		}
		return cases[blocks[i].caseIdx].ID < cases[blocks[j].caseIdx].ID
	})
	lengths := make([]int, len(blocks))
	for i, b := range blocks {
		lengths[i] = b.minutes
	}

	search := newMakespanSearch(lengths, rooms, deadline)
	exhausted := search.run()
	elapsed := time.Since(started)

	if search.best > horizon {
		s.log.Errorf("or scheduling infeasible: best makespan %d exceeds horizon %d", search.best, horizon)
		return nil, fmt.Errorf("%w: %d cases do not fit %d rooms within %d min", model.ErrInfeasible, len(cases), rooms, horizon)
	}
	if exhausted {
		res.Status = model.StatusOptimal
	} else {
		res.Status = model.StatusFeasible
	}

	// Pack each room sequentially in block order; per-room non-overlap holds
	// by construction.
	starts := make([]int, rooms)
	res.Schedule = make([]model.ScheduledCase, 0, len(cases))
	for i, b := range blocks {
		room := search.bestAssign[i]
		c := cases[b.caseIdx]
		res.Schedule = append(res.Schedule, model.ScheduledCase{
			CaseID:        c.ID,
			ProcedureType: c.ProcedureType,
			Room:          room + 1,
			StartTime:     model.FormatClock(openMin + starts[room]),
			Duration:      durations[b.caseIdx],
			WithTurnover:  b.minutes,
		})
		starts[room] += b.minutes
	}
	sort.Slice(res.Schedule, func(i, j int) bool {
		if res.Schedule[i].Room != res.Schedule[j].Room {
			return res.Schedule[i].Room < res.Schedule[j].Room
		}
		return res.Schedule[i].StartTime < res.Schedule[j].StartTime
	})

	res.Metrics = Metrics{
		TotalCases:       len(cases),
		MakespanMinutes:  search.best,
		UtilizationPct:   float64(search.best) / float64(horizon) * 100,
		SolverStatus:     res.Status.String(),
		SolveTimeSeconds: elapsed.Seconds(),
	}
	s.log.Infof("scheduled %d cases on %d rooms: makespan %d min, %s",
		len(cases), rooms, search.best, res.Status)
	if err := s.sink.RecordScheduleRun(metrics.ScheduleRunEvent{
		Component: "or_scheduler",
		Status:    res.Status.String(),
		Objective: float64(search.best),
		Duration:  elapsed,
		Time:      started,
	}); err != nil {
		s.log.Warnf("schedule run metric: %v", err)
	}
	return res, nil
}
