package service

import "errors"

// Precondition violations are contract breaches by the caller. They fail
// the single invoking operation, are never sent through the adapter and
// are never retried.
var (
	ErrNotAttached   = errors.New("engine is not attached to an adapter")
	ErrEmptyCallID   = errors.New("call id must not be empty")
	ErrMissingHandle = errors.New("call info has no handle")
)

// ErrSimulatedCrash is raised deliberately when a call is placed to the
// crash sentinel number. It exists so the orchestrating framework can
// verify its handling of a dying call backend; it must propagate, not be
// caught and downgraded to a reported failure.
var ErrSimulatedCrash = errors.New("simulated call handler crash")
