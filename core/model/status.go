package model

// SolveStatus tags the outcome of an optimization run. The two-phase
// "attempt constrained solve, else degrade" control flow is reported through
// this type rather than through errors.
type SolveStatus int

const (
	// StatusOptimal means the solver proved the returned solution optimal.
	StatusOptimal SolveStatus = iota
	// StatusFeasible means the time budget expired with a feasible incumbent.
	StatusFeasible
	// StatusFallback means the greedy heuristic produced the result.
	StatusFallback
	// StatusFailed means no solution could be produced at all.
	StatusFailed
)

func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusFallback:
		return "fallback"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}
