package models

import "time"

// DateLayout is the calendar-day format used throughout the booking core.
// Dates are normalized calendar values; no timezone conversion happens here.
const DateLayout = "2006-01-02"

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking occupies a single (resource, time block, date) slot. A recurring
// request materializes as independent rows, one per realized occurrence, each
// carrying a copy of the originating pattern for auditability.
type Booking struct {
	ID          string             `bson:"id" json:"id"`
	ResourceID  string             `bson:"resource_id" json:"resource_id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	TimeBlockID string             `bson:"time_block_id" json:"time_block_id"`
	Date        string             `bson:"date" json:"date"` // "YYYY-MM-DD"
	Purpose     string             `bson:"purpose" json:"purpose"`
	Status      string             `bson:"status" json:"status"`
	IsRecurring bool               `bson:"is_recurring" json:"is_recurring"`
	Pattern     *RecurrencePattern `bson:"pattern,omitempty" json:"pattern,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Live reports whether the booking still occupies its slot.
func (b *Booking) Live() bool {
	return b.Status != BookingCancelled
}

// CreateBookingInput is the request payload for booking creation.
type CreateBookingInput struct {
	ResourceID  string             `json:"resource_id" binding:"required"`
	UserID      string             `json:"user_id"`
	TimeBlockID string             `json:"time_block_id" binding:"required"`
	Date        string             `json:"date" binding:"required"`
	Purpose     string             `json:"purpose"`
	IsRecurring bool               `json:"is_recurring"`
	Pattern     *RecurrencePattern `json:"pattern,omitempty"`
}

// SingleBookingResult is returned for a non-recurring creation.
type SingleBookingResult struct {
	Booking *Booking `json:"booking"`
}

// RecurringBookingResult reports the outcome of a recurring batch: how many
// occurrences were created and how many candidate dates were skipped because
// their slot was already occupied.
type RecurringBookingResult struct {
	Created  int        `json:"created"`
	Skipped  int        `json:"skipped"`
	Bookings []*Booking `json:"bookings"`
}
