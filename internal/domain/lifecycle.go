package domain

import "tutorhub/internal/pkg/apperr"

// Action is a lifecycle operation on a booking.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

// transitions is the whole booking state machine. COMPLETED and CANCELLED
// have no outgoing edges.
var transitions = map[BookingStatus]map[Action]BookingStatus{
	BookingPending: {
		ActionConfirm: BookingConfirmed,
		ActionCancel:  BookingCancelled,
	},
	BookingConfirmed: {
		ActionComplete: BookingCompleted,
		ActionCancel:   BookingCancelled,
	},
}

// Transition returns the status reached by applying action to from.
// Cancelling a cancelled booking is a Conflict; every other move outside
// the table is InvalidState.
func Transition(from BookingStatus, action Action) (BookingStatus, error) {
	if next, ok := transitions[from][action]; ok {
		return next, nil
	}
	if from == BookingCancelled && action == ActionCancel {
		return from, apperr.Conflict("Booking is already cancelled")
	}
	return from, apperr.InvalidState(invalidMessage(from, action))
}

func invalidMessage(from BookingStatus, action Action) string {
	switch action {
	case ActionComplete:
		return "Only confirmed bookings can be completed"
	case ActionConfirm:
		return "Only pending bookings can be confirmed"
	case ActionCancel:
		return "Completed bookings cannot be cancelled"
	}
	return "Booking cannot move from " + string(from) + " via " + string(action)
}

// IsTerminal reports whether s has no outgoing transitions.
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}
