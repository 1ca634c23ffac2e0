package model

import "errors"

// Error taxonomy shared by the scheduling engines. Callers match with
// errors.Is; engines wrap these with context using fmt.Errorf and %w.
var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a request was rejected before any model was built.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInfeasible indicates no solution exists under the current hard constraints.
	ErrInfeasible = errors.New("infeasible")
	// ErrTimeout indicates the solver exhausted its budget without a usable solution.
	ErrTimeout = errors.New("solver timeout")
	// ErrEmptyQueue is returned by Dequeue when no patients are waiting.
	ErrEmptyQueue = errors.New("queue empty")
)
