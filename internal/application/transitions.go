package application

import "fmt"

// transitions is the fixed adjacency table for the application lifecycle.
// Accepted, Rejected and Withdrawn have no outgoing edges and are terminal.
var transitions = map[Status][]Status{
	StatusApplied:      {StatusInterviewing, StatusRejected, StatusWithdrawn},
	StatusInterviewing: {StatusOffer, StatusRejected, StatusWithdrawn},
	StatusOffer:        {StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusAccepted:     {},
	StatusRejected:     {},
	StatusWithdrawn:    {},
}

// AllowedTargets returns the statuses reachable from s. The returned slice
// is a copy, callers may mutate it.
func AllowedTargets(s Status) []Status {
	targets := transitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// InvalidTransitionError marks an attempted transition that is not in the
// allowed set. It is a programming error on the caller's side: the selector
// should only ever offer legal targets.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}

// CanTransition validates a move from one status to another. It never
// silently ignores an illegal move.
func CanTransition(from, to Status) error {
	for _, t := range transitions[from] {
		if t == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}
