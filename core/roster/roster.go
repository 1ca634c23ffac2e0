// Package roster assigns staff to shifts under coverage, weekly-hour, rest
// and role constraints. The constrained solve degrades to a deterministic
// greedy pass when the problem is infeasible or the budget expires; coverage
// minimums are relaxed up front when staff capacity cannot structurally
// satisfy them.
package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/swasthya/scheduling/core/logger"
	"github.com/swasthya/scheduling/core/metrics"
	"github.com/swasthya/scheduling/core/model"
)

// Optimizer plans one roster per Initialize/Optimize pair. Each run owns its
// own instance; there is no cross-run state.
type Optimizer struct {
	cfg  Config
	log  logger.Logger
	sink metrics.Sink

	staff []model.StaffMember
	slots []slot
	days  int
}

// slot is a shift plus its day offset from the start of the horizon.
type slot struct {
	idx   int
	day   int
	shift model.Shift
}

// Metrics summarizes roster quality.
type Metrics struct {
	TotalAssignments int     `json:"total_assignments"`
	CoveragePct      float64 `json:"coverage_percentage"`
	MeanHours        float64 `json:"average_hours_per_staff"`
	StdDevHours      float64 `json:"std_dev_hours"`
	FairnessScore    float64 `json:"fairness_score"`
	SolveTimeSeconds float64 `json:"solver_time_seconds"`
	Method           string  `json:"method"`
}

// Result is a complete assignment set with quality metrics. Relaxed reports
// that coverage minimums were zeroed because capacity could not cover them.
type Result struct {
	RunID       string             `json:"run_id"`
	Status      model.SolveStatus  `json:"status"`
	Relaxed     bool               `json:"relaxed,omitempty"`
	Assignments []model.Assignment `json:"assignments"`
	Metrics     Metrics            `json:"metrics"`
}

// New creates an optimizer. A nil sink disables metrics.
func New(cfg Config, log logger.Logger, sink metrics.Sink) *Optimizer {
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Optimizer{cfg: cfg, log: log, sink: sink}
}

// Initialize expands the date range into one shift per (date, shift type)
// with the configured per-role minimums. Nil shiftTypes and zero
// shiftDuration fall back to the configuration.
func (o *Optimizer) Initialize(staff []model.StaffMember, startDate time.Time, days int, shiftTypes []string, shiftDurationHours int) error {
	if len(staff) == 0 {
		return fmt.Errorf("%w: staff list is empty", model.ErrInvalidInput)
	}
	if days <= 0 {
		return fmt.Errorf("%w: duration %d days", model.ErrInvalidInput, days)
	}
	if shiftDurationHours == 0 {
		shiftDurationHours = o.cfg.ShiftDurationHours
	}
	if shiftDurationHours < 0 || shiftDurationHours > 24 {
		return fmt.Errorf("%w: shift duration %d hours", model.ErrInvalidInput, shiftDurationHours)
	}
	if len(shiftTypes) == 0 {
		shiftTypes = o.cfg.ShiftTypes
	}

	o.staff = make([]model.StaffMember, len(staff))
	copy(o.staff, staff)
	seen := make(map[string]struct{}, len(staff))
	for i := range o.staff {
		m := &o.staff[i]
		if m.ID == "" {
			return fmt.Errorf("%w: staff member %d has no id", model.ErrInvalidInput, i)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate staff id %s", model.ErrInvalidInput, m.ID)
		}
		seen[m.ID] = struct{}{}
		if m.MaxHoursPerWeek == 0 {
			m.MaxHoursPerWeek = o.cfg.DefaultMaxHoursPerWeek
		}
		if m.MaxHoursPerWeek < 0 {
			return fmt.Errorf("%w: staff %s weekly cap %d", model.ErrInvalidInput, m.ID, m.MaxHoursPerWeek)
		}
	}

	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	o.days = days
	o.slots = o.slots[:0]
	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)
		for _, name := range shiftTypes {
			required := make(map[string]int, len(o.cfg.RoleMinimums))
			for role, n := range o.cfg.RoleMinimums {
				required[role] = n
			}
			o.slots = append(o.slots, slot{
				idx: len(o.slots),
				day: day,
				shift: model.Shift{
					Date:          date,
					Name:          name,
					StartTime:     o.startTimeFor(name),
					DurationHours: shiftDurationHours,
					RequiredStaff: required,
				},
			})
		}
	}
	o.log.Infof("initialized roster: %d staff, %d shifts over %d days", len(o.staff), len(o.slots), days)
	return nil
}

func (o *Optimizer) startTimeFor(name string) string {
	if t, ok := o.cfg.StartTimes[name]; ok {
		return t
	}
	return "08:00"
}

// Shifts returns the expanded shift list of the current run.
func (o *Optimizer) Shifts() []model.Shift {
	out := make([]model.Shift, len(o.slots))
	for i, sl := range o.slots {
		out[i] = sl.shift
	}
	return out
}

// Optimize produces a full assignment set. Nil minStaffPerShift uses the
// configured per-shift-type totals. The run honors the configured budget and
// any earlier deadline on ctx; on infeasibility or expiry it degrades to the
// greedy fallback instead of failing.
func (o *Optimizer) Optimize(ctx context.Context, minStaffPerShift map[string]int) (*Result, error) {
	if len(o.slots) == 0 {
		return nil, fmt.Errorf("%w: optimizer not initialized", model.ErrInvalidInput)
	}
	minPerType := make(map[string]int, len(minStaffPerShift))
	if minStaffPerShift == nil {
		minStaffPerShift = o.cfg.MinStaffPerShift
	}
	for name, n := range minStaffPerShift {
		if n < 0 {
			return nil, fmt.Errorf("%w: min staff %d for shift %q", model.ErrInvalidInput, n, name)
		}
		minPerType[name] = n
	}

	started := time.Now()
	deadline := started.Add(time.Duration(o.cfg.SolverBudgetSeconds) * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	res := &Result{RunID: uuid.NewString()}

	// Structural capacity check: when the available staff-shifts cannot
	// cover the requested minimums, the shift-type totals are relaxed to
	// zero for this run rather than leaving the model infeasible.
	required := 0
	for _, sl := range o.slots {
		req := 0
		for _, n := range sl.shift.RequiredStaff {
			req += n
		}
		if t := minPerType[sl.shift.Name]; t > req {
			req = t
		}
		required += req
	}
	weeks := (o.days + 6) / 7
	capacity := 0
	for _, m := range o.staff {
		capacity += m.MaxHoursPerWeek / o.shiftDuration() * weeks
	}
	if capacity < required {
		res.Relaxed = true
		o.log.Warnf("staff capacity %d shifts cannot cover %d required assignments; relaxing coverage minimums to zero", capacity, required)
		for name := range minPerType {
			minPerType[name] = 0
		}
	}

	assignments, err := o.solve(deadline, minPerType)
	method := "constrained"
	res.Status = model.StatusOptimal
	if err != nil {
		o.log.Warnf("constrained solve failed (%v), degrading to greedy fallback", err)
		assignments = o.fallbackGreedy(minPerType)
		method = "fallback_greedy"
		res.Status = model.StatusFallback
	}
	elapsed := time.Since(started)

	res.Assignments = assignments
	res.Metrics = o.calcMetrics(assignments, method, elapsed)
	o.log.Infof("roster complete: %d assignments, method %s, fairness %.3f",
		len(assignments), method, res.Metrics.FairnessScore)
	if err := o.sink.RecordScheduleRun(metrics.ScheduleRunEvent{
		Component: "roster_optimizer",
		Status:    res.Status.String(),
		Objective: float64(len(assignments)),
		Relaxed:   res.Relaxed,
		Duration:  elapsed,
		Time:      started,
	}); err != nil {
		o.log.Warnf("schedule run metric: %v", err)
	}
	return res, nil
}

func (o *Optimizer) shiftDuration() int {
	if len(o.slots) > 0 {
		return o.slots[0].shift.DurationHours
	}
	return o.cfg.ShiftDurationHours
}

func (o *Optimizer) calcMetrics(assignments []model.Assignment, method string, elapsed time.Duration) Metrics {
	hours := make([]float64, len(o.staff))
	index := make(map[string]int, len(o.staff))
	for i, m := range o.staff {
		index[m.ID] = i
	}
	for _, a := range assignments {
		hours[index[a.StaffID]] += float64(a.DurationHours)
	}

	mean := stat.Mean(hours, nil)
	std := 0.0
	if len(hours) > 1 {
		std = stat.StdDev(hours, nil)
	}
	return Metrics{
		TotalAssignments: len(assignments),
		CoveragePct:      float64(len(assignments)) / float64(len(o.slots)*assumedStaffPerShift) * 100,
		MeanHours:        mean,
		StdDevHours:      std,
		FairnessScore:    1 / (1 + std),
		SolveTimeSeconds: elapsed.Seconds(),
		Method:           method,
	}
}
