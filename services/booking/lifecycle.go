package booking

import (
	"fmt"

	"reservio/models"
)

// InitialStatus returns the status a new booking starts in: pending when the
// resource requires approval, confirmed otherwise.
func InitialStatus(resource *models.Resource) string {
	if resource.RequiresApproval {
		return models.BookingPending
	}
	return models.BookingConfirmed
}

// allowedTransitions encodes the lifecycle state machine. Cancelled and
// completed are terminal; rows are never deleted as a side effect of a
// transition.
var allowedTransitions = map[string]map[string]bool{
	models.BookingPending: {
		models.BookingConfirmed: true, // approval granted
		models.BookingCancelled: true, // approval denied, or requester/admin cancel
	},
	models.BookingConfirmed: {
		models.BookingCancelled: true, // requester/admin cancel
		models.BookingCompleted: true, // usage window passed, marked externally
	},
	models.BookingCompleted: {},
	models.BookingCancelled: {},
}

// Transition applies a lifecycle transition in place. Cancelling an
// already-cancelled booking is an error, not a no-op. The transition never
// mutates resource state.
func Transition(b *models.Booking, newStatus string) error {
	if _, known := allowedTransitions[newStatus]; !known {
		return NewValidationError(fmt.Sprintf("unknown booking status %q", newStatus))
	}
	if newStatus == models.BookingCancelled && b.Status == models.BookingCancelled {
		return NewAlreadyCancelledError(b.ID)
	}
	if !allowedTransitions[b.Status][newStatus] {
		return NewValidationError(fmt.Sprintf("cannot transition booking from %s to %s", b.Status, newStatus))
	}
	b.Status = newStatus
	return nil
}
