// Package lifecycle defines the booking state machine. Transitions are
// declared as data and validated through a looplab/fsm guard, so the legal
// walks through the statuses live in one place.
package lifecycle

import (
	"context"

	loopfsm "github.com/looplab/fsm"

	"github.com/jamesruscoe/dog-kennel/internal/models"
)

// Event names an action that moves a booking between statuses.
type Event string

const (
	EventApprove  Event = "approve"
	EventReject   Event = "reject"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
)

// Transition is a single legal state change.
type Transition struct {
	Event Event
	Src   models.BookingStatus
	Dst   models.BookingStatus
}

// Transitions is the whole booking lifecycle. Rejected, cancelled and
// completed are terminal: nothing leads out of them.
var Transitions = []Transition{
	{Event: EventApprove, Src: models.BookingStatusPending, Dst: models.BookingStatusApproved},
	{Event: EventReject, Src: models.BookingStatusPending, Dst: models.BookingStatusRejected},
	{Event: EventCancel, Src: models.BookingStatusPending, Dst: models.BookingStatusCancelled},
	{Event: EventCancel, Src: models.BookingStatusApproved, Dst: models.BookingStatusCancelled},
	{Event: EventComplete, Src: models.BookingStatusApproved, Dst: models.BookingStatusCompleted},
}

// events converts Transitions into looplab/fsm descriptors, grouping
// transitions that share an event and destination into one EventDesc with
// multiple sources.
var events = buildEvents()

func buildEvents() []loopfsm.EventDesc {
	type key struct {
		event string
		dst   string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0, len(Transitions))

	for _, t := range Transitions {
		k := key{event: string(t.Event), dst: string(t.Dst)}
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], string(t.Src))
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, k := range order {
		out = append(out, loopfsm.EventDesc{Name: k.event, Src: grouped[k], Dst: k.dst})
	}
	return out
}

// eventFor maps a destination status to the event that reaches it. Every
// status except pending is the destination of exactly one event.
func eventFor(to models.BookingStatus) (Event, bool) {
	switch to {
	case models.BookingStatusApproved:
		return EventApprove, true
	case models.BookingStatusRejected:
		return EventReject, true
	case models.BookingStatusCancelled:
		return EventCancel, true
	case models.BookingStatusCompleted:
		return EventComplete, true
	default:
		return "", false
	}
}

// Guard validates booking status transitions. looplab/fsm tracks current
// state internally, so a short-lived machine is built per check.
type Guard struct{}

// NewGuard creates a transition guard.
func NewGuard() *Guard {
	return &Guard{}
}

// CanTransition reports whether the lifecycle allows moving from one status
// to another.
func (g *Guard) CanTransition(from, to models.BookingStatus) bool {
	return g.Check(from, to) == nil
}

// Check returns an InvalidTransitionError naming both statuses when the
// move is not allowed, nil otherwise.
func (g *Guard) Check(from, to models.BookingStatus) error {
	ev, ok := eventFor(to)
	if !ok {
		return &models.InvalidTransitionError{From: from, To: to}
	}

	machine := loopfsm.NewFSM(string(from), events, nil)
	if err := machine.Event(context.Background(), string(ev)); err != nil {
		return &models.InvalidTransitionError{From: from, To: to}
	}
	if models.BookingStatus(machine.Current()) != to {
		return &models.InvalidTransitionError{From: from, To: to}
	}
	return nil
}
