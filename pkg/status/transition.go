package status

import "fmt"

// Policy decides which status changes an administrator may apply.
//
// Pending moves to Confirmed or Cancelled. Cancelled is terminal. Confirmed is
// terminal unless AllowCancelConfirmed is set, in which case it may still be
// cancelled.
type Policy struct {
	AllowCancelConfirmed bool
}

func (p Policy) CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	switch from {
	case Pending:
		return to == Confirmed || to == Cancelled
	case Confirmed:
		return p.AllowCancelConfirmed && to == Cancelled
	}
	return false
}

// Transition returns to when the change is allowed and an error wrapping
// ErrTransitionNotAllowed otherwise.
func (p Policy) Transition(from, to Status) (Status, error) {
	if !p.CanTransition(from, to) {
		return Status{}, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, describe(from), describe(to))
	}
	return to, nil
}

// Targets lists the statuses reachable from from in one step.
func (p Policy) Targets(from Status) []Status {
	var out []Status
	for _, to := range all {
		if p.CanTransition(from, to) {
			out = append(out, to)
		}
	}
	return out
}

func (p Policy) IsTerminal(s Status) bool {
	return len(p.Targets(s)) == 0
}

func describe(s Status) string {
	if s.IsZero() {
		return "<none>"
	}
	return s.slug
}
