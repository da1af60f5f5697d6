package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "reservio/database/repository/booking"
	"reservio/models"
	"reservio/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking materializes a booking request. Non-recurring requests fail
// hard on conflict; recurring requests expand into candidate dates, skip
// conflicting ones, and fail only when every candidate conflicted.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.CreateBookingInput) (*BookingResult, error) {
	logger := utils.GetLogger()

	if input.ResourceID == "" || input.UserID == "" || input.TimeBlockID == "" || input.Date == "" {
		return nil, NewValidationError("resource_id, user_id, time_block_id and date are required")
	}
	anchor, err := time.Parse(models.DateLayout, input.Date)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", input.Date))
	}

	user, err := s.UserRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewNotFoundError(fmt.Sprintf("user %s does not exist", input.UserID))
	}

	resource, err := s.ResourceRepo.GetByID(ctx, input.ResourceID)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, NewNotFoundError(fmt.Sprintf("resource %s does not exist", input.ResourceID))
	}
	if !resource.Bookable() {
		return nil, NewResourceUnavailableError(resource.ID, resource.Status)
	}

	block, err := s.TimeBlockRepo.GetByID(ctx, input.TimeBlockID)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, NewNotFoundError(fmt.Sprintf("time block %s does not exist", input.TimeBlockID))
	}

	if !input.IsRecurring {
		created, err := s.createSingle(ctx, input, resource, block)
		if err != nil {
			return nil, err
		}
		return &BookingResult{Single: &models.SingleBookingResult{Booking: created}}, nil
	}

	if input.Pattern == nil {
		return nil, NewValidationError("recurring bookings require a pattern")
	}
	if err := validatePattern(*input.Pattern); err != nil {
		return nil, err
	}

	result, err := s.createRecurring(ctx, input, anchor, resource, block)
	if err != nil {
		return nil, err
	}
	logger.Info("recurring booking batch processed",
		zap.String("resourceID", resource.ID),
		zap.String("userID", user.ID),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return &BookingResult{Recurring: result}, nil
}

// validatePattern rejects malformed patterns before expansion; the expander
// itself does not validate.
func validatePattern(p models.RecurrencePattern) error {
	switch p.Type {
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly:
	default:
		return NewValidationError(fmt.Sprintf("unknown recurrence type %q", p.Type))
	}
	if p.Interval < 1 {
		return NewValidationError("recurrence interval must be at least 1")
	}
	if p.Type == models.RecurrenceWeekly && len(p.DaysOfWeek) == 0 {
		return NewValidationError("weekly patterns require at least one weekday")
	}
	if p.EndDate != "" {
		if _, err := time.Parse(models.DateLayout, p.EndDate); err != nil {
			return NewValidationError(fmt.Sprintf("invalid pattern end date %q", p.EndDate))
		}
	}
	return nil
}

func (s *DefaultBookingService) createSingle(ctx context.Context, input models.CreateBookingInput, resource *models.Resource, block *models.TimeBlock) (*models.Booking, error) {
	occupiedBy, err := CheckSlot(ctx, s.BookingRepo, input.ResourceID, input.TimeBlockID, input.Date)
	if err != nil {
		return nil, err
	}
	if occupiedBy != "" {
		return nil, NewConflictError(occupiedBy)
	}

	booking := s.newBooking(input, input.Date, resource, nil)
	if err := s.BookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
			// A concurrent request won the slot between our check and the
			// write; the store's unique index is the final arbiter.
			return nil, NewConflictError("")
		}
		return nil, err
	}
	s.scheduleCompletion(booking, block)
	return booking, nil
}

// createRecurring folds over the candidate dates strictly sequentially. Each
// occurrence is durably created before the next candidate is checked, so the
// batch can never double-book against itself.
func (s *DefaultBookingService) createRecurring(ctx context.Context, input models.CreateBookingInput, anchor time.Time, resource *models.Resource, block *models.TimeBlock) (*models.RecurringBookingResult, error) {
	result := &models.RecurringBookingResult{}

	for _, date := range ExpandPattern(anchor, *input.Pattern) {
		dateStr := date.Format(models.DateLayout)

		occupiedBy, err := CheckSlot(ctx, s.BookingRepo, input.ResourceID, input.TimeBlockID, dateStr)
		if err != nil {
			return nil, err
		}
		if occupiedBy != "" {
			result.Skipped++
			continue
		}

		booking := s.newBooking(input, dateStr, resource, input.Pattern)
		if err := s.BookingRepo.Create(ctx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		s.scheduleCompletion(booking, block)
		result.Created++
		result.Bookings = append(result.Bookings, booking)
	}

	if result.Created == 0 {
		return nil, NewBatchExhaustedError()
	}
	return result, nil
}

func (s *DefaultBookingService) newBooking(input models.CreateBookingInput, date string, resource *models.Resource, pattern *models.RecurrencePattern) *models.Booking {
	booking := &models.Booking{
		ID:          uuid.New().String(),
		ResourceID:  input.ResourceID,
		UserID:      input.UserID,
		TimeBlockID: input.TimeBlockID,
		Date:        date,
		Purpose:     input.Purpose,
		Status:      InitialStatus(resource),
		IsRecurring: pattern != nil,
	}
	if pattern != nil {
		copied := *pattern
		booking.Pattern = &copied
	}
	return booking
}

func (s *DefaultBookingService) scheduleCompletion(booking *models.Booking, block *models.TimeBlock) {
	if s.Completion == nil || booking.Status != models.BookingConfirmed {
		return
	}
	if err := s.Completion.ScheduleCompletion(booking, block); err != nil {
		utils.GetLogger().Warn("failed to schedule completion sweep",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// CancelBooking cancels a booking on behalf of the actor. The requester may
// cancel their own bookings; administrators may cancel any.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	booking, actor, err := s.loadBookingAndActor(ctx, bookingID, actorID)
	if err != nil {
		return nil, err
	}
	if actor.ID != booking.UserID && !actor.IsAdmin() {
		return nil, NewPermissionDeniedError("only the requester or an administrator may cancel a booking")
	}
	if err := Transition(booking, models.BookingCancelled); err != nil {
		return nil, err
	}
	if err := s.BookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateBookingStatus applies a lifecycle transition. Approval and completion
// are administrative actions; cancellation follows the CancelBooking rules.
func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, bookingID, newStatus, actorID string) (*models.Booking, error) {
	if newStatus == models.BookingCancelled {
		return s.CancelBooking(ctx, bookingID, actorID)
	}

	booking, actor, err := s.loadBookingAndActor(ctx, bookingID, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, NewPermissionDeniedError("only an administrator may approve or complete a booking")
	}
	if err := Transition(booking, newStatus); err != nil {
		return nil, err
	}
	if err := s.BookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	if booking.Status == models.BookingConfirmed {
		if block, err := s.TimeBlockRepo.GetByID(ctx, booking.TimeBlockID); err == nil && block != nil {
			s.scheduleCompletion(booking, block)
		}
	}
	return booking, nil
}

// DeleteBooking removes a booking row outright. This is the separately
// authorized administrative action; normal flows cancel instead.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, bookingID, actorID string) error {
	booking, actor, err := s.loadBookingAndActor(ctx, bookingID, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return NewPermissionDeniedError("only an administrator may delete a booking")
	}
	return s.BookingRepo.Delete(ctx, booking.ID)
}

// GetBooking retrieves a booking by its ID.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NewNotFoundError(fmt.Sprintf("booking %s does not exist", bookingID))
	}
	return booking, nil
}

// ListUserBookings returns the actor's booking history.
func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.BookingRepo.ListByUser(ctx, userID)
}

// ListResourceDay returns the day sheet for a resource and date.
func (s *DefaultBookingService) ListResourceDay(ctx context.Context, resourceID, date string) ([]models.Booking, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	return s.BookingRepo.ListByResourceDate(ctx, resourceID, date)
}

func (s *DefaultBookingService) loadBookingAndActor(ctx context.Context, bookingID, actorID string) (*models.Booking, *models.User, error) {
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, NewNotFoundError(fmt.Sprintf("booking %s does not exist", bookingID))
	}
	actor, err := s.UserRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if actor == nil {
		return nil, nil, NewNotFoundError(fmt.Sprintf("user %s does not exist", actorID))
	}
	return booking, actor, nil
}
