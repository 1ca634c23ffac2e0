package roster

import (
	"sort"

	"github.com/swasthya/scheduling/core/model"
)

// fallbackGreedy is the best-effort schedule used when the constrained solve
// is infeasible or out of budget. Single deterministic pass: shifts in
// chronological order, staff in declaration order. Weekly caps and the rest
// rule are still enforced; coverage may be under-satisfied.
func (o *Optimizer) fallbackGreedy(minPerType map[string]int) []model.Assignment {
	tr := newTracker()
	for _, sl := range o.slots {
		roles := make([]string, 0, len(sl.shift.RequiredStaff))
		for role := range sl.shift.RequiredStaff {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		for _, role := range roles {
			need := sl.shift.RequiredStaff[role]
			for i := range o.staff {
				if need == 0 {
					break
				}
				m := &o.staff[i]
				if m.Role != role || !tr.eligible(*m, sl) {
					continue
				}
				tr.take(*m, sl)
				need--
			}
		}
		for i := range o.staff {
			if len(tr.inShift[sl.idx]) >= minPerType[sl.shift.Name] {
				break
			}
			m := &o.staff[i]
			if !tr.eligible(*m, sl) {
				continue
			}
			tr.take(*m, sl)
		}
	}
	if tr.assignments == nil {
		return []model.Assignment{}
	}
	return tr.assignments
}
