package booking

import (
	"context"

	bookingRepo "reservio/database/repository/booking"
	resourceRepo "reservio/database/repository/resource"
	timeblockRepo "reservio/database/repository/timeblock"
	userRepo "reservio/database/repository/user"
	"reservio/models"
)

// BookingResult is the outcome of CreateBooking; exactly one field is set.
type BookingResult struct {
	Single    *models.SingleBookingResult    `json:"single,omitempty"`
	Recurring *models.RecurringBookingResult `json:"recurring,omitempty"`
}

// BookingService defines the scheduling core's operations. Transport framing,
// authentication and notification dispatch live outside; actors arrive here
// already identified.
type BookingService interface {
	CreateBooking(ctx context.Context, input models.CreateBookingInput) (*BookingResult, error)
	CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID, newStatus, actorID string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID, actorID string) error
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	ListResourceDay(ctx context.Context, resourceID, date string) ([]models.Booking, error)
}

// CompletionScheduler defers the confirmed -> completed transition until the
// booked window has passed. The lifecycle itself stays untimed; the scheduler
// is the external trigger.
type CompletionScheduler interface {
	ScheduleCompletion(booking *models.Booking, block *models.TimeBlock) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	BookingRepo   bookingRepo.BookingRepository
	ResourceRepo  resourceRepo.ResourceRepository
	TimeBlockRepo timeblockRepo.TimeBlockRepository
	UserRepo      userRepo.UserRepository
	Completion    CompletionScheduler // optional
}
