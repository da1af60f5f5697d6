package booking_test

import (
	"testing"

	"reservio/models"
	"reservio/services/booking"

	"github.com/stretchr/testify/require"
)

func TestInitialStatus(t *testing.T) {
	require.Equal(t, models.BookingPending, booking.InitialStatus(&models.Resource{RequiresApproval: true}))
	require.Equal(t, models.BookingConfirmed, booking.InitialStatus(&models.Resource{RequiresApproval: false}))
}

func TestTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingCompleted, true},
		{models.BookingConfirmed, models.BookingPending, false},
		{models.BookingCompleted, models.BookingCancelled, false},
		{models.BookingCompleted, models.BookingConfirmed, false},
		{models.BookingCancelled, models.BookingConfirmed, false},
		{models.BookingCancelled, models.BookingPending, false},
	}

	for _, tc := range cases {
		b := &models.Booking{ID: "b1", Status: tc.from}
		err := booking.Transition(b, tc.to)
		if tc.ok {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			require.Equal(t, tc.to, b.Status)
		} else {
			require.Error(t, err, "%s -> %s", tc.from, tc.to)
			require.Equal(t, tc.from, b.Status, "failed transition must not mutate status")
		}
	}
}

func TestDoubleCancelIsAnError(t *testing.T) {
	b := &models.Booking{ID: "b1", Status: models.BookingConfirmed}
	require.NoError(t, booking.Transition(b, models.BookingCancelled))

	err := booking.Transition(b, models.BookingCancelled)
	require.Error(t, err)
	require.Equal(t, booking.CodeAlreadyCancelled, booking.CodeOf(err))
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	b := &models.Booking{ID: "b1", Status: models.BookingPending}
	err := booking.Transition(b, "archived")
	require.Error(t, err)
	require.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}
