// Package forge holds the CareerForge view state: the upload lifecycle and the
// analysis/roadmap session that composes it.
//
// Nothing in this package performs I/O on the caller's goroutine. Operations
// that need the backend return a Task; the caller runs it wherever it likes
// (a bubbletea command, a goroutine, inline in a CLI) and feeds the resulting
// Outcome back through Session.Apply. All mutation happens in the operation
// methods and in Apply, so a single event loop needs no locking.
package forge

import "context"

// Phase is the lifecycle of one kind of backend call.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Op is the state of a single operation. Value holds the last successful
// result; a failure records Err without touching Value.
type Op[T any] struct {
	Phase Phase
	Value T
	Err   error

	ticket uint64 // request currently holding PhasePending, 0 when none
}

// Pending reports whether a request of this kind is in flight.
func (o Op[T]) Pending() bool {
	return o.Phase == PhasePending
}

// Task is a backend call issued by an operation. It must be run exactly once.
type Task func(ctx context.Context) Outcome

// Outcome is the completion of a Task, to be passed to Session.Apply.
type Outcome interface {
	outcome()
}
