package booking_test

import (
	"testing"
	"time"

	"reservio/models"
	"reservio/services/booking"

	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func formatAll(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(models.DateLayout)
	}
	return out
}

func TestExpandDaily(t *testing.T) {
	pattern := models.RecurrencePattern{
		Type:     models.RecurrenceDaily,
		Interval: 3,
		EndDate:  "2024-01-10",
	}
	got := formatAll(booking.ExpandPattern(date("2024-01-01"), pattern))
	require.Equal(t, []string{"2024-01-01", "2024-01-04", "2024-01-07", "2024-01-10"}, got)
}

func TestExpandDaily_SpacingProperty(t *testing.T) {
	for _, interval := range []int{1, 2, 7, 30} {
		pattern := models.RecurrencePattern{Type: models.RecurrenceDaily, Interval: interval}
		dates := booking.ExpandPattern(date("2024-03-15"), pattern)
		require.NotEmpty(t, dates)
		require.LessOrEqual(t, len(dates), booking.MaxOccurrences)
		require.Equal(t, "2024-03-15", dates[0].Format(models.DateLayout))
		for i := 1; i < len(dates); i++ {
			gap := dates[i].Sub(dates[i-1]).Hours() / 24
			require.Equal(t, float64(interval), gap, "interval %d at index %d", interval, i)
		}
	}
}

func TestExpandDaily_EmissionCap(t *testing.T) {
	// No end date and interval 1: the horizon allows 366 days, the cap wins.
	pattern := models.RecurrencePattern{Type: models.RecurrenceDaily, Interval: 1}
	dates := booking.ExpandPattern(date("2024-01-01"), pattern)
	require.Len(t, dates, booking.MaxOccurrences)
}

func TestExpandWeekly_MondayWednesday(t *testing.T) {
	// 2024-01-01 is a Monday.
	pattern := models.RecurrencePattern{
		Type:       models.RecurrenceWeekly,
		Interval:   1,
		DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
		EndDate:    "2024-01-14",
	}
	got := formatAll(booking.ExpandPattern(date("2024-01-01"), pattern))
	require.Equal(t, []string{"2024-01-01", "2024-01-03", "2024-01-08", "2024-01-10"}, got)
}

func TestExpandWeekly_WeekdayMembershipProperty(t *testing.T) {
	pattern := models.RecurrencePattern{
		Type:       models.RecurrenceWeekly,
		Interval:   2,
		DaysOfWeek: []time.Weekday{time.Tuesday, time.Friday},
	}
	dates := booking.ExpandPattern(date("2024-02-06"), pattern)
	require.NotEmpty(t, dates)
	for _, d := range dates {
		require.Contains(t, []time.Weekday{time.Tuesday, time.Friday}, d.Weekday())
	}
}

func TestExpandWeekly_EveryOtherWeek(t *testing.T) {
	// Anchor Tuesday 2024-01-02; every 2nd week on Tuesday.
	pattern := models.RecurrencePattern{
		Type:       models.RecurrenceWeekly,
		Interval:   2,
		DaysOfWeek: []time.Weekday{time.Tuesday},
		EndDate:    "2024-02-01",
	}
	got := formatAll(booking.ExpandPattern(date("2024-01-02"), pattern))
	require.Equal(t, []string{"2024-01-02", "2024-01-16", "2024-01-30"}, got)
}

func TestExpandMonthly(t *testing.T) {
	pattern := models.RecurrencePattern{
		Type:     models.RecurrenceMonthly,
		Interval: 1,
		EndDate:  "2024-04-30",
	}
	got := formatAll(booking.ExpandPattern(date("2024-01-15"), pattern))
	require.Equal(t, []string{"2024-01-15", "2024-02-15", "2024-03-15", "2024-04-15"}, got)
}

func TestExpandMonthly_ClampsShortMonths(t *testing.T) {
	// Day 31 clamps to each target month's last day, then returns to 31.
	pattern := models.RecurrencePattern{
		Type:     models.RecurrenceMonthly,
		Interval: 1,
		EndDate:  "2024-05-31",
	}
	got := formatAll(booking.ExpandPattern(date("2024-01-31"), pattern))
	require.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30", "2024-05-31"}, got)
}

func TestExpand_EndDateBound(t *testing.T) {
	pattern := models.RecurrencePattern{
		Type:     models.RecurrenceDaily,
		Interval: 1,
		EndDate:  "2024-01-03",
	}
	dates := booking.ExpandPattern(date("2024-01-01"), pattern)
	require.Len(t, dates, 3)
	last := dates[len(dates)-1]
	require.False(t, last.After(date("2024-01-03")))
}
