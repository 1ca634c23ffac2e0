package roster

import (
	"fmt"
	"sort"
	"time"

	"github.com/swasthya/scheduling/core/model"
)

// tracker carries the incremental state of a roster build: hours per staff
// per day, night/morning days for the rest rule, and shift membership.
type tracker struct {
	hoursByDay  map[string]map[int]int
	nightDays   map[string]map[int]bool
	morningDays map[string]map[int]bool
	inShift     map[int]map[string]bool
	totalHours  map[string]int
	assignments []model.Assignment
}

func newTracker() *tracker {
	return &tracker{
		hoursByDay:  make(map[string]map[int]int),
		nightDays:   make(map[string]map[int]bool),
		morningDays: make(map[string]map[int]bool),
		inShift:     make(map[int]map[string]bool),
		totalHours:  make(map[string]int),
	}
}

// fitsWeeklyCap reports whether adding durHours on day keeps every rolling
// 7-day window containing that day within capHours. This is deliberately
// stronger than bucketing the horizon into calendar weeks.
func (t *tracker) fitsWeeklyCap(staffID string, day, durHours, capHours int) bool {
	byDay := t.hoursByDay[staffID]
	for start := day - 6; start <= day; start++ {
		sum := durHours
		for d := start; d < start+7; d++ {
			sum += byDay[d]
		}
		if sum > capHours {
			return false
		}
	}
	return true
}

// fitsRest reports whether the assignment respects the night-to-morning
// exclusion in both directions.
func (t *tracker) fitsRest(staffID, shiftName string, day int) bool {
	if shiftName == ShiftMorning && t.nightDays[staffID][day-1] {
		return false
	}
	if shiftName == ShiftNight && t.morningDays[staffID][day+1] {
		return false
	}
	return true
}

func (t *tracker) eligible(m model.StaffMember, sl slot) bool {
	if t.inShift[sl.idx][m.ID] {
		return false
	}
	if !t.fitsWeeklyCap(m.ID, sl.day, sl.shift.DurationHours, m.MaxHoursPerWeek) {
		return false
	}
	return t.fitsRest(m.ID, sl.shift.Name, sl.day)
}

func (t *tracker) take(m model.StaffMember, sl slot) {
	if t.hoursByDay[m.ID] == nil {
		t.hoursByDay[m.ID] = make(map[int]int)
	}
	t.hoursByDay[m.ID][sl.day] += sl.shift.DurationHours
	t.totalHours[m.ID] += sl.shift.DurationHours
	switch sl.shift.Name {
	case ShiftNight:
		if t.nightDays[m.ID] == nil {
			t.nightDays[m.ID] = make(map[int]bool)
		}
		t.nightDays[m.ID][sl.day] = true
	case ShiftMorning:
		if t.morningDays[m.ID] == nil {
			t.morningDays[m.ID] = make(map[int]bool)
		}
		t.morningDays[m.ID][sl.day] = true
	}
	if t.inShift[sl.idx] == nil {
		t.inShift[sl.idx] = make(map[string]bool)
	}
	t.inShift[sl.idx][m.ID] = true
	t.assignments = append(t.assignments, model.Assignment{
		StaffID:       m.ID,
		StaffName:     m.Name,
		Role:          m.Role,
		Date:          sl.shift.Date.Format(model.DateLayout),
		Shift:         sl.shift.Name,
		StartTime:     sl.shift.StartTime,
		DurationHours: sl.shift.DurationHours,
	})
}

// solve fills every shift's per-role minimums and shift-type total, shifts in
// chronological order, picking the least-loaded eligible member each time.
// Completing means the assignment count equals the structural lower bound,
// so the result is optimal for the minimize-total-assignments objective.
func (o *Optimizer) solve(deadline time.Time, minPerType map[string]int) ([]model.Assignment, error) {
	tr := newTracker()
	for _, sl := range o.slots {
		if time.Now().After(deadline) {
			return nil, model.ErrTimeout
		}
		roles := make([]string, 0, len(sl.shift.RequiredStaff))
		for role := range sl.shift.RequiredStaff {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		for _, role := range roles {
			for n := 0; n < sl.shift.RequiredStaff[role]; n++ {
				m := o.pickLeastLoaded(tr, sl, role)
				if m == nil {
					return nil, fmt.Errorf("%w: no eligible %s for %s shift on %s",
						model.ErrInfeasible, role, sl.shift.Name, sl.shift.Date.Format(model.DateLayout))
				}
				tr.take(*m, sl)
			}
		}
		for len(tr.inShift[sl.idx]) < minPerType[sl.shift.Name] {
			m := o.pickLeastLoaded(tr, sl, "")
			if m == nil {
				return nil, fmt.Errorf("%w: cannot reach %d staff on %s shift %s",
					model.ErrInfeasible, minPerType[sl.shift.Name], sl.shift.Name, sl.shift.Date.Format(model.DateLayout))
			}
			tr.take(*m, sl)
		}
	}
	return tr.assignments, nil
}

// pickLeastLoaded returns the eligible member with the fewest assigned
// hours, declaration order breaking ties. Empty role matches any role.
func (o *Optimizer) pickLeastLoaded(tr *tracker, sl slot, role string) *model.StaffMember {
	var best *model.StaffMember
	bestHours := 0
	for i := range o.staff {
		m := &o.staff[i]
		if role != "" && m.Role != role {
			continue
		}
		if !tr.eligible(*m, sl) {
			continue
		}
		if best == nil || tr.totalHours[m.ID] < bestHours {
			best = m
			bestHours = tr.totalHours[m.ID]
		}
	}
	return best
}
