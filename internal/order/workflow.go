package order

import (
	"fmt"

	"github.com/frahmantamala/order-management/internal/core/datamodel/order"
)

// ErrTransitionUnavailable is returned when a named transition is not
// reachable from the order's current workflow position. Callers that treat
// this as a no-op (e.g. replayed notifications) match on it with errors.Is.
var ErrTransitionUnavailable = fmt.Errorf("workflow transition unavailable")

type transition struct {
	from string
	to   string
}

// Workflow is a named-transition state machine over order states. It never
// writes state itself; Target resolves the destination and the service
// persists it.
type Workflow struct {
	transitions map[string][]transition
}

// NewCheckoutWorkflow builds the workflow the checkout flow engages:
// place moves a pending order to completed, cancel moves it to canceled.
func NewCheckoutWorkflow() *Workflow {
	return &Workflow{
		transitions: map[string][]transition{
			order.TransitionPlace: {
				{from: order.StatePending, to: order.StateCompleted},
			},
			order.TransitionCancel: {
				{from: order.StatePending, to: order.StateCanceled},
			},
		},
	}
}

// Can reports whether the named transition may be applied from state.
func (w *Workflow) Can(state, name string) bool {
	_, ok := w.Target(state, name)
	return ok
}

// Target resolves the destination state of applying the named transition
// from state.
func (w *Workflow) Target(state, name string) (string, bool) {
	for _, t := range w.transitions[name] {
		if t.from == state {
			return t.to, true
		}
	}
	return "", false
}

// Available lists the transitions applicable from state.
func (w *Workflow) Available(state string) []string {
	var names []string
	for name, ts := range w.transitions {
		for _, t := range ts {
			if t.from == state {
				names = append(names, name)
				break
			}
		}
	}
	return names
}
