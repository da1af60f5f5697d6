package bookingRepo

import (
	"context"
	"errors"

	"reservio/models"
)

// ErrDuplicateSlot is returned when the store's unique index rejects a write
// because another live booking already occupies the slot. It is the final
// arbiter for concurrent submissions that both observed "available".
var ErrDuplicateSlot = errors.New("a live booking already occupies this slot")

// BookingRepository persists booking rows.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, bookingID string) error

	// FindLiveBySlot returns the non-cancelled booking occupying
	// (resourceID, timeBlockID, date), or nil if the slot is free.
	FindLiveBySlot(ctx context.Context, resourceID, timeBlockID, date string) (*models.Booking, error)

	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByResourceDate(ctx context.Context, resourceID, date string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
}
