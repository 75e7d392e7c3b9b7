package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel behind every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError names the current and the requested status of a
// rejected transition.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Graph is the transition table of the lifecycle. It is a read-only value:
// build it once with NewGraph and pass it to whatever needs it.
type Graph struct {
	next map[Status][]Status
}

// GraphOption adjusts the default transition table.
type GraphOption func(map[Status][]Status)

// WithRewash lets quality control send an order back to washing.
func WithRewash() GraphOption {
	return func(next map[Status][]Status) {
		next[QualityCheck] = append(next[QualityCheck], Washing)
	}
}

// NewGraph returns the default transition table with opts applied.
//
// Every stage may only advance to its immediate successor; Ready branches to
// OutForDelivery (delivery) or straight to the terminal Collected (pickup),
// and OutForDelivery ends in Delivered.
func NewGraph(opts ...GraphOption) Graph {
	next := map[Status][]Status{
		Received:       {Queued},
		Queued:         {Washing},
		Washing:        {Drying},
		Drying:         {Ironing},
		Ironing:        {QualityCheck},
		QualityCheck:   {Packaging},
		Packaging:      {Ready},
		Ready:          {OutForDelivery, Collected},
		OutForDelivery: {Delivered},
	}
	for _, opt := range opts {
		opt(next)
	}
	return Graph{next: next}
}

// CanTransition reports whether next is a legal successor of current.
// Terminal and invalid statuses have no successors.
func (g Graph) CanTransition(current, next Status) bool {
	if current.IsTerminal() || current.Validate() != nil || next.Validate() != nil {
		return false
	}
	for _, s := range g.next[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Check is CanTransition returning an InvalidTransitionError on rejection.
func (g Graph) Check(current, next Status) error {
	if !g.CanTransition(current, next) {
		return NewInvalidTransitionError(current, next)
	}
	return nil
}

// Successors returns the statuses reachable from current in one step.
func (g Graph) Successors(current Status) []Status {
	if current.IsTerminal() {
		return nil
	}
	out := make([]Status, len(g.next[current]))
	copy(out, g.next[current])
	return out
}
