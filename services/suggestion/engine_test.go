package suggestion_test

import (
	"testing"

	"reservio/models"
	"reservio/services/suggestion"

	"github.com/stretchr/testify/require"
)

const (
	resourceID = "room-1"
	userID     = "u-1"
	targetDate = "2024-06-03"
)

// catalog: four morning blocks (first two back-to-back) and two afternoon.
func testCatalog() []models.TimeBlock {
	return []models.TimeBlock{
		{ID: "t1", Label: "08:00 - 09:00", Start: 480, End: 540, Shift: models.ShiftMorning},
		{ID: "t2", Label: "09:00 - 10:00", Start: 540, End: 600, Shift: models.ShiftMorning},
		{ID: "t3", Label: "10:30 - 11:30", Start: 630, End: 690, Shift: models.ShiftMorning},
		{ID: "t4", Label: "11:45 - 12:45", Start: 705, End: 765, Shift: models.ShiftMorning},
		{ID: "t5", Label: "14:00 - 15:00", Start: 840, End: 900, Shift: models.ShiftAfternoon},
		{ID: "t6", Label: "15:15 - 16:15", Start: 915, End: 975, Shift: models.ShiftAfternoon},
	}
}

func pastBooking(user, block, date string) models.Booking {
	return models.Booking{
		ID: user + "-" + block + "-" + date, ResourceID: resourceID, UserID: user,
		TimeBlockID: block, Date: date, Status: models.BookingCompleted,
	}
}

func findSuggestion(t *testing.T, list []models.Suggestion, blockID string) models.Suggestion {
	t.Helper()
	for _, s := range list {
		if s.TimeBlockID == blockID {
			return s
		}
	}
	t.Fatalf("no suggestion for block %s in %+v", blockID, list)
	return models.Suggestion{}
}

func TestPersonalFrequency(t *testing.T) {
	// 10 past bookings, 4 of them in t3, spread so no other heuristic can
	// outscore the 40% frequency signal for t3.
	history := []models.Booking{
		pastBooking(userID, "t3", "2024-05-01"),
		pastBooking(userID, "t3", "2024-05-02"),
		pastBooking(userID, "t3", "2024-05-03"),
		pastBooking(userID, "t3", "2024-05-06"),
		pastBooking(userID, "t5", "2024-05-07"),
		pastBooking(userID, "t5", "2024-05-08"),
		pastBooking(userID, "t5", "2024-05-09"),
		pastBooking(userID, "t6", "2024-05-10"),
		pastBooking(userID, "t6", "2024-05-13"),
		pastBooking(userID, "t6", "2024-05-14"),
	}

	// Only the frequency heuristic: no adjacency, no contention, no skew.
	th := suggestion.DefaultThresholds
	th.ContentionMaxUsage = 0
	th.AdjacencyConfidence = 0
	th.ShiftSkewMin = 1.1

	got := suggestion.SuggestWith(th, resourceID, userID, targetDate, history, testCatalog())
	s := findSuggestion(t, got, "t3")
	require.InDelta(t, 40.0, s.Confidence, 0.001)
}

func TestLowContention(t *testing.T) {
	// 10 live bookings across all users, 1 of them in t3: 10% usage, so t3
	// gets confidence 90. t5 holds 6 of 10 (60% usage) and is excluded.
	history := []models.Booking{
		pastBooking("u-9", "t3", "2024-05-01"),
		pastBooking("u-9", "t5", "2024-05-01"),
		pastBooking("u-9", "t5", "2024-05-02"),
		pastBooking("u-9", "t5", "2024-05-03"),
		pastBooking("u-8", "t5", "2024-05-06"),
		pastBooking("u-8", "t5", "2024-05-07"),
		pastBooking("u-8", "t5", "2024-05-08"),
		pastBooking("u-8", "t6", "2024-05-09"),
		pastBooking("u-7", "t6", "2024-05-10"),
		pastBooking("u-7", "t6", "2024-05-13"),
	}

	th := suggestion.DefaultThresholds
	th.AdjacencyConfidence = 0
	th.ShiftSkewMin = 1.1

	got := suggestion.SuggestWith(th, resourceID, userID, targetDate, history, testCatalog())
	require.InDelta(t, 90.0, findSuggestion(t, got, "t3").Confidence, 0.001)
	for _, s := range got {
		require.NotEqual(t, "t5", s.TimeBlockID, "heavily used blocks are not low-contention picks")
	}
}

func TestCancelledBookingsNeverCount(t *testing.T) {
	cancelled := pastBooking("u-9", "t1", targetDate)
	cancelled.Status = models.BookingCancelled

	got := suggestion.Suggest(resourceID, userID, targetDate, []models.Booking{cancelled}, testCatalog())
	// t1 stays available: a cancelled booking neither blocks the slot nor
	// feeds the contention statistics.
	findSuggestion(t, got, "t1")
}

func TestAdjacency(t *testing.T) {
	got := suggestion.Suggest(resourceID, userID, targetDate, nil, testCatalog())
	s := findSuggestion(t, got, "t1")
	require.InDelta(t, suggestion.DefaultThresholds.AdjacencyConfidence, s.Confidence, 0.001)
	require.Contains(t, s.Reason, "longer activities")
}

func TestShiftPreference(t *testing.T) {
	// 8 morning vs 2 afternoon: skew 0.6, boosting morning blocks to 60.
	var history []models.Booking
	mornings := []string{"t1", "t2", "t3", "t4", "t1", "t2", "t3", "t4"}
	for i, block := range mornings {
		history = append(history, pastBooking(userID, block, "2024-05-0"+string(rune('1'+i))))
	}
	history = append(history,
		pastBooking(userID, "t5", "2024-05-20"),
		pastBooking(userID, "t6", "2024-05-21"),
	)

	th := suggestion.DefaultThresholds
	th.PersonalFrequencyMin = 101
	th.ContentionMaxUsage = 0
	th.AdjacencyConfidence = 0

	got := suggestion.SuggestWith(th, resourceID, userID, targetDate, history, testCatalog())
	require.NotEmpty(t, got)
	for _, s := range got {
		require.Contains(t, []string{"t1", "t2", "t3", "t4"}, s.TimeBlockID)
		require.InDelta(t, 60.0, s.Confidence, 0.001)
		require.Contains(t, s.Reason, "morning")
	}
}

func TestOccupiedBlocksAreExcluded(t *testing.T) {
	history := []models.Booking{
		pastBooking("u-9", "t1", targetDate), // live booking on the target date
	}
	got := suggestion.Suggest(resourceID, userID, targetDate, history, testCatalog())
	for _, s := range got {
		require.NotEqual(t, "t1", s.TimeBlockID, "occupied slots must never be suggested")
	}
}

func TestTruncationAndOrdering(t *testing.T) {
	got := suggestion.Suggest(resourceID, userID, targetDate, nil, testCatalog())
	require.LessOrEqual(t, len(got), suggestion.DefaultThresholds.MaxSuggestions)
	for i := 1; i < len(got); i++ {
		require.GreaterOrEqual(t, got[i-1].Confidence, got[i].Confidence)
	}
}

func TestDeterminism(t *testing.T) {
	history := []models.Booking{
		pastBooking(userID, "t3", "2024-05-01"),
		pastBooking("u-9", "t5", "2024-05-02"),
		pastBooking("u-8", "t2", "2024-05-03"),
	}
	first := suggestion.Suggest(resourceID, userID, targetDate, history, testCatalog())
	for i := 0; i < 20; i++ {
		require.Equal(t, first, suggestion.Suggest(resourceID, userID, targetDate, history, testCatalog()))
	}
}

func TestNoAvailableBlocks(t *testing.T) {
	var history []models.Booking
	for _, block := range testCatalog() {
		history = append(history, pastBooking("u-9", block.ID, targetDate))
	}
	got := suggestion.Suggest(resourceID, userID, targetDate, history, testCatalog())
	require.Empty(t, got)
}
