package booking_test

import (
	"context"
	"sync"
	"testing"

	bookingRepo "reservio/database/repository/booking"
	"reservio/models"
	"reservio/services/booking"

	"github.com/stretchr/testify/require"
)

// memBookingRepo is an in-memory BookingRepository that enforces the same
// live-slot uniqueness the Mongo partial index provides.
type memBookingRepo struct {
	mu   sync.Mutex
	rows []*models.Booking

	// forceDuplicate makes the next Create fail as if a concurrent writer
	// won the slot between check and write.
	forceDuplicate bool
}

func (m *memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forceDuplicate {
		m.forceDuplicate = false
		return bookingRepo.ErrDuplicateSlot
	}
	for _, row := range m.rows {
		if row.Live() && row.ResourceID == b.ResourceID && row.TimeBlockID == b.TimeBlockID && row.Date == b.Date {
			return bookingRepo.ErrDuplicateSlot
		}
	}
	copied := *b
	m.rows = append(m.rows, &copied)
	return nil
}

func (m *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memBookingRepo) Update(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.ID == b.ID {
			copied := *b
			m.rows[i] = &copied
			return nil
		}
	}
	return nil
}

func (m *memBookingRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memBookingRepo) FindLiveBySlot(_ context.Context, resourceID, timeBlockID, date string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Live() && row.ResourceID == resourceID && row.TimeBlockID == timeBlockID && row.Date == date {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memBookingRepo) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, row := range m.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memBookingRepo) ListByResourceDate(_ context.Context, resourceID, date string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, row := range m.rows {
		if row.ResourceID == resourceID && row.Date == date {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memBookingRepo) ListAll(_ context.Context) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Booking, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, *row)
	}
	return out, nil
}

type memResourceRepo struct{ byID map[string]*models.Resource }

func (m *memResourceRepo) Create(_ context.Context, r *models.Resource) error { return nil }
func (m *memResourceRepo) GetByID(_ context.Context, id string) (*models.Resource, error) {
	if r, ok := m.byID[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}
func (m *memResourceRepo) Update(_ context.Context, r *models.Resource) error      { return nil }
func (m *memResourceRepo) UpdateStatus(_ context.Context, id, status string) error { return nil }
func (m *memResourceRepo) List(_ context.Context) ([]models.Resource, error)       { return nil, nil }

type memTimeBlockRepo struct{ byID map[string]*models.TimeBlock }

func (m *memTimeBlockRepo) Seed(_ context.Context, blocks []models.TimeBlock) error { return nil }
func (m *memTimeBlockRepo) GetByID(_ context.Context, id string) (*models.TimeBlock, error) {
	if b, ok := m.byID[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}
func (m *memTimeBlockRepo) List(_ context.Context) ([]models.TimeBlock, error) { return nil, nil }
func (m *memTimeBlockRepo) ListByShift(_ context.Context, shift string) ([]models.TimeBlock, error) {
	return nil, nil
}

type memUserRepo struct{ byID map[string]*models.User }

func (m *memUserRepo) Create(_ context.Context, u *models.User) error { return nil }
func (m *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}
func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return nil, nil
}

// completionRecorder captures scheduled completion sweeps.
type completionRecorder struct{ bookingIDs []string }

func (c *completionRecorder) ScheduleCompletion(b *models.Booking, _ *models.TimeBlock) error {
	c.bookingIDs = append(c.bookingIDs, b.ID)
	return nil
}

type fixture struct {
	svc        *booking.DefaultBookingService
	bookings   *memBookingRepo
	completion *completionRecorder
}

func newFixture(requiresApproval bool) *fixture {
	bookings := &memBookingRepo{}
	completion := &completionRecorder{}
	svc := &booking.DefaultBookingService{
		BookingRepo: bookings,
		ResourceRepo: &memResourceRepo{byID: map[string]*models.Resource{
			"room-1": {ID: "room-1", Name: "Lab A", RequiresApproval: requiresApproval, Status: models.ResourceAvailable},
			"room-down": {ID: "room-down", Name: "Lab B", Status: models.ResourceMaintenance},
		}},
		TimeBlockRepo: &memTimeBlockRepo{byID: map[string]*models.TimeBlock{
			"tb-1": {ID: "tb-1", Label: "08:00 - 09:30", Start: 480, End: 570, Shift: models.ShiftMorning},
		}},
		UserRepo: &memUserRepo{byID: map[string]*models.User{
			"u-1":   {ID: "u-1", Role: models.RoleMember},
			"u-2":   {ID: "u-2", Role: models.RoleMember},
			"admin": {ID: "admin", Role: models.RoleAdmin},
		}},
		Completion: completion,
	}
	return &fixture{svc: svc, bookings: bookings, completion: completion}
}

func singleInput(userID, date string) models.CreateBookingInput {
	return models.CreateBookingInput{
		ResourceID:  "room-1",
		UserID:      userID,
		TimeBlockID: "tb-1",
		Date:        date,
		Purpose:     "study group",
	}
}

func TestCreateSingle_StatusFollowsApprovalPolicy(t *testing.T) {
	ctx := context.Background()

	f := newFixture(false)
	result, err := f.svc.CreateBooking(ctx, singleInput("u-1", "2024-05-01"))
	require.NoError(t, err)
	require.NotNil(t, result.Single)
	require.Equal(t, models.BookingConfirmed, result.Single.Booking.Status)
	require.Equal(t, []string{result.Single.Booking.ID}, f.completion.bookingIDs)

	f = newFixture(true)
	result, err = f.svc.CreateBooking(ctx, singleInput("u-1", "2024-05-01"))
	require.NoError(t, err)
	require.Equal(t, models.BookingPending, result.Single.Booking.Status)
	require.Empty(t, f.completion.bookingIDs, "pending bookings are not swept until confirmed")
}

func TestCreateSingle_SecondSubmissionConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	_, err := f.svc.CreateBooking(ctx, singleInput("u-1", "2024-05-01"))
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, singleInput("u-2", "2024-05-01"))
	require.Error(t, err)
	require.Equal(t, booking.CodeConflict, booking.CodeOf(err))
}

func TestCreateSingle_CancelledBookingFreesSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	result, err := f.svc.CreateBooking(ctx, singleInput("u-1", "2024-05-01"))
	require.NoError(t, err)
	_, err = f.svc.CancelBooking(ctx, result.Single.Booking.ID, "u-1")
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, singleInput("u-2", "2024-05-01"))
	require.NoError(t, err, "a cancelled booking must never block its slot")
}

func TestCreateSingle_ConcurrentWriterWinsSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)
	f.bookings.forceDuplicate = true

	_, err := f.svc.CreateBooking(ctx, singleInput("u-1", "2024-05-01"))
	require.Error(t, err)
	require.Equal(t, booking.CodeConflict, booking.CodeOf(err))
}

func TestCreateBooking_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	cases := []models.CreateBookingInput{
		{ResourceID: "room-1", UserID: "u-1", TimeBlockID: "tb-1"}, // missing date
		singleInputWith(func(in *models.CreateBookingInput) { in.Date = "01/05/2024" }),
		singleInputWith(func(in *models.CreateBookingInput) {
			in.IsRecurring = true
		}), // missing pattern
		singleInputWith(func(in *models.CreateBookingInput) {
			in.IsRecurring = true
			in.Pattern = &models.RecurrencePattern{Type: models.RecurrenceDaily, Interval: 0}
		}),
		singleInputWith(func(in *models.CreateBookingInput) {
			in.IsRecurring = true
			in.Pattern = &models.RecurrencePattern{Type: models.RecurrenceWeekly, Interval: 1}
		}), // weekly with no weekdays
	}

	for i, input := range cases {
		_, err := f.svc.CreateBooking(ctx, input)
		require.Error(t, err, "case %d", i)
		require.Equal(t, booking.CodeValidation, booking.CodeOf(err), "case %d", i)
	}
}

func singleInputWith(mutate func(*models.CreateBookingInput)) models.CreateBookingInput {
	in := singleInput("u-1", "2024-05-01")
	mutate(&in)
	return in
}

func TestCreateBooking_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	in := singleInput("ghost", "2024-05-01")
	_, err := f.svc.CreateBooking(ctx, in)
	require.Equal(t, booking.CodeNotFound, booking.CodeOf(err))

	in = singleInput("u-1", "2024-05-01")
	in.ResourceID = "missing"
	_, err = f.svc.CreateBooking(ctx, in)
	require.Equal(t, booking.CodeNotFound, booking.CodeOf(err))

	in = singleInput("u-1", "2024-05-01")
	in.TimeBlockID = "missing"
	_, err = f.svc.CreateBooking(ctx, in)
	require.Equal(t, booking.CodeNotFound, booking.CodeOf(err))
}

func TestCreateBooking_ResourceUnderMaintenance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	in := singleInput("u-1", "2024-05-01")
	in.ResourceID = "room-down"
	_, err := f.svc.CreateBooking(ctx, in)
	require.Error(t, err)
	require.Equal(t, booking.CodeResourceUnavailable, booking.CodeOf(err))
}

func TestCreateRecurring_SkipsConflictingDates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	// Occupy two of the five candidate dates first.
	_, err := f.svc.CreateBooking(ctx, singleInput("u-2", "2024-05-02"))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, singleInput("u-2", "2024-05-04"))
	require.NoError(t, err)

	in := singleInput("u-1", "2024-05-01")
	in.IsRecurring = true
	in.Pattern = &models.RecurrencePattern{
		Type:     models.RecurrenceDaily,
		Interval: 1,
		EndDate:  "2024-05-05",
	}

	result, err := f.svc.CreateBooking(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, result.Recurring)
	require.Equal(t, 3, result.Recurring.Created)
	require.Equal(t, 2, result.Recurring.Skipped)

	for _, b := range result.Recurring.Bookings {
		require.True(t, b.IsRecurring)
		require.NotNil(t, b.Pattern, "each occurrence keeps a copy of the pattern")
		require.NotContains(t, []string{"2024-05-02", "2024-05-04"}, b.Date)
	}
}

func TestCreateRecurring_BatchExhausted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	for _, d := range []string{"2024-05-01", "2024-05-02", "2024-05-03"} {
		_, err := f.svc.CreateBooking(ctx, singleInput("u-2", d))
		require.NoError(t, err)
	}

	in := singleInput("u-1", "2024-05-01")
	in.IsRecurring = true
	in.Pattern = &models.RecurrencePattern{
		Type:     models.RecurrenceDaily,
		Interval: 1,
		EndDate:  "2024-05-03",
	}

	_, err := f.svc.CreateBooking(ctx, in)
	require.Error(t, err)
	require.Equal(t, booking.CodeBatchExhausted, booking.CodeOf(err))
}

func TestApprovalFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)

	result, err := f.svc.CreateBooking(ctx, singleInput("u-1", "2024-05-01"))
	require.NoError(t, err)
	id := result.Single.Booking.ID
	require.Equal(t, models.BookingPending, result.Single.Booking.Status)

	confirmed, err := f.svc.UpdateBookingStatus(ctx, id, models.BookingConfirmed, "admin")
	require.NoError(t, err)
	require.Equal(t, models.BookingConfirmed, confirmed.Status)
	require.Equal(t, []string{id}, f.completion.bookingIDs, "approval schedules the completion sweep")

	cancelled, err := f.svc.CancelBooking(ctx, id, "u-1")
	require.NoError(t, err)
	require.Equal(t, models.BookingCancelled, cancelled.Status)

	_, err = f.svc.CancelBooking(ctx, id, "u-1")
	require.Error(t, err)
	require.Equal(t, booking.CodeAlreadyCancelled, booking.CodeOf(err))
}

func TestPermissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)

	result, err := f.svc.CreateBooking(ctx, singleInput("u-1", "2024-05-01"))
	require.NoError(t, err)
	id := result.Single.Booking.ID

	// Another member may not approve, cancel or delete.
	_, err = f.svc.UpdateBookingStatus(ctx, id, models.BookingConfirmed, "u-2")
	require.Equal(t, booking.CodePermissionDenied, booking.CodeOf(err))

	_, err = f.svc.CancelBooking(ctx, id, "u-2")
	require.Equal(t, booking.CodePermissionDenied, booking.CodeOf(err))

	err = f.svc.DeleteBooking(ctx, id, "u-1")
	require.Equal(t, booking.CodePermissionDenied, booking.CodeOf(err))

	// Administrators may cancel on the requester's behalf.
	_, err = f.svc.CancelBooking(ctx, id, "admin")
	require.NoError(t, err)
}

func TestDeleteBooking_AdminRemovesRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	result, err := f.svc.CreateBooking(ctx, singleInput("u-1", "2024-05-01"))
	require.NoError(t, err)
	id := result.Single.Booking.ID

	require.NoError(t, f.svc.DeleteBooking(ctx, id, "admin"))

	_, err = f.svc.GetBooking(ctx, id)
	require.Equal(t, booking.CodeNotFound, booking.CodeOf(err))
}
