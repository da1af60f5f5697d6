package booking

import (
	"context"

	bookingRepo "reservio/database/repository/booking"
)

// CheckSlot reports whether (resourceID, timeBlockID, date) is free. It
// returns the occupying booking when the slot is taken, nil when it is free.
// A slot is occupied iff a stored booking with status other than cancelled
// matches the triple; cancelled bookings never block a slot.
//
// Within a recurring batch the caller invokes this strictly sequentially and
// stores each created occurrence before checking the next candidate, so
// earlier occurrences in the same batch are visible here. Across independent
// concurrent requests the store's unique live-slot index is the final arbiter.
func CheckSlot(ctx context.Context, repo bookingRepo.BookingRepository, resourceID, timeBlockID, date string) (occupiedBy string, err error) {
	existing, err := repo.FindLiveBySlot(ctx, resourceID, timeBlockID, date)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", nil
	}
	return existing.ID, nil
}
