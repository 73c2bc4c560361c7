package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary, optionally scoped to one
// package.
type PhaseEvent struct {
	Name    string
	Pkg     string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Generate.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) emit(e PhaseEvent) {
	if o != nil {
		o(e)
	}
}
