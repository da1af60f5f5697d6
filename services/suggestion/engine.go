// Package suggestion ranks available time blocks for a requester using
// historical booking data. It is pure computation: callers supply the full
// history and catalog, identical inputs produce identical ordered output, and
// no I/O happens here.
package suggestion

import (
	"fmt"
	"sort"

	"reservio/models"
)

// Thresholds holds the tunable constants of the scoring heuristics.
type Thresholds struct {
	// PersonalFrequencyMin is the minimum confidence (percent of the
	// requester's history) for a personal-frequency suggestion.
	PersonalFrequencyMin float64
	// ContentionMaxUsage is the usage-rate ceiling (percent of all live
	// bookings) below which a block counts as low-contention.
	ContentionMaxUsage float64
	// AdjacencyConfidence is the fixed confidence for back-to-back blocks.
	AdjacencyConfidence float64
	// ShiftSkewMin is the minimum |morning-afternoon| skew ratio that
	// triggers the shift-preference boost.
	ShiftSkewMin float64
	// MaxSuggestions caps the returned list.
	MaxSuggestions int
}

// DefaultThresholds are the production values.
var DefaultThresholds = Thresholds{
	PersonalFrequencyMin: 15,
	ContentionMaxUsage:   40,
	AdjacencyConfidence:  85,
	ShiftSkewMin:         0.20,
	MaxSuggestions:       5,
}

// Suggest ranks the time blocks still available for (resourceID, date) using
// DefaultThresholds. See SuggestWith.
func Suggest(resourceID, userID, date string, history []models.Booking, catalog []models.TimeBlock) []models.Suggestion {
	return SuggestWith(DefaultThresholds, resourceID, userID, date, history, catalog)
}

// SuggestWith computes up to MaxSuggestions ranked slot proposals. Four
// heuristics run independently; per block the highest confidence wins, the
// result sorts by confidence descending with catalog order breaking ties.
func SuggestWith(th Thresholds, resourceID, userID, date string, history []models.Booking, catalog []models.TimeBlock) []models.Suggestion {
	available := availableBlocks(resourceID, date, history, catalog)
	if len(available) == 0 {
		return nil
	}

	best := make(map[string]models.Suggestion)
	keep := func(s models.Suggestion) {
		if prev, ok := best[s.TimeBlockID]; !ok || s.Confidence > prev.Confidence {
			best[s.TimeBlockID] = s
		}
	}

	for _, s := range personalFrequency(th, userID, history, available) {
		keep(s)
	}
	for _, s := range lowContention(th, history, available) {
		keep(s)
	}
	for _, s := range adjacency(th, available) {
		keep(s)
	}
	for _, s := range shiftPreference(th, userID, history, catalog, available) {
		keep(s)
	}

	// Catalog order indexes tie-breaking so identical inputs always yield
	// an identical ordering.
	order := make(map[string]int, len(available))
	for i, block := range available {
		order[block.ID] = i
	}

	suggestions := make([]models.Suggestion, 0, len(best))
	for _, s := range best {
		suggestions = append(suggestions, s)
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return order[suggestions[i].TimeBlockID] < order[suggestions[j].TimeBlockID]
	})

	if len(suggestions) > th.MaxSuggestions {
		suggestions = suggestions[:th.MaxSuggestions]
	}
	return suggestions
}

// availableBlocks filters the catalog to blocks with no live booking on
// (resourceID, date), ordered by start time.
func availableBlocks(resourceID, date string, history []models.Booking, catalog []models.TimeBlock) []models.TimeBlock {
	occupied := make(map[string]bool)
	for _, b := range history {
		if b.ResourceID == resourceID && b.Date == date && b.Status != models.BookingCancelled {
			occupied[b.TimeBlockID] = true
		}
	}

	blocks := make([]models.TimeBlock, 0, len(catalog))
	for _, block := range catalog {
		if !occupied[block.ID] {
			blocks = append(blocks, block)
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Start < blocks[j].Start })
	return blocks
}

// personalFrequency favors blocks the requester books often.
func personalFrequency(th Thresholds, userID string, history []models.Booking, available []models.TimeBlock) []models.Suggestion {
	perBlock := make(map[string]int)
	total := 0
	for _, b := range history {
		if b.UserID == userID {
			perBlock[b.TimeBlockID]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	var out []models.Suggestion
	for _, block := range available {
		count := perBlock[block.ID]
		confidence := 100 * float64(count) / float64(total)
		if confidence > th.PersonalFrequencyMin {
			out = append(out, models.Suggestion{
				TimeBlockID: block.ID,
				Reason:      fmt.Sprintf("You book this slot often (%d of your %d bookings)", count, total),
				Confidence:  confidence,
			})
		}
	}
	return out
}

// lowContention favors blocks that are rarely booked across all users.
func lowContention(th Thresholds, history []models.Booking, available []models.TimeBlock) []models.Suggestion {
	perBlock := make(map[string]int)
	total := 0
	for _, b := range history {
		if b.Status != models.BookingCancelled {
			perBlock[b.TimeBlockID]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	var out []models.Suggestion
	for _, block := range available {
		usageRate := 100 * float64(perBlock[block.ID]) / float64(total)
		if usageRate < th.ContentionMaxUsage {
			out = append(out, models.Suggestion{
				TimeBlockID: block.ID,
				Reason:      "This slot is usually free and easy to get",
				Confidence:  100 - usageRate,
			})
		}
	}
	return out
}

// adjacency flags blocks that run back-to-back with the next available block,
// suiting longer activities.
func adjacency(th Thresholds, available []models.TimeBlock) []models.Suggestion {
	var out []models.Suggestion
	for i := 0; i < len(available)-1; i++ {
		if available[i].End == available[i+1].Start {
			out = append(out, models.Suggestion{
				TimeBlockID: available[i].ID,
				Reason:      fmt.Sprintf("Back-to-back with %s, good for longer activities", available[i+1].Label),
				Confidence:  th.AdjacencyConfidence,
			})
		}
	}
	return out
}

// shiftPreference boosts the requester's dominant shift when their history
// skews clearly toward morning or afternoon.
func shiftPreference(th Thresholds, userID string, history []models.Booking, catalog []models.TimeBlock, available []models.TimeBlock) []models.Suggestion {
	shiftOf := make(map[string]string, len(catalog))
	for _, block := range catalog {
		shiftOf[block.ID] = block.Shift
	}

	morning, afternoon := 0, 0
	for _, b := range history {
		if b.UserID != userID {
			continue
		}
		switch shiftOf[b.TimeBlockID] {
		case models.ShiftMorning:
			morning++
		case models.ShiftAfternoon:
			afternoon++
		}
	}

	total := morning + afternoon
	if total == 0 {
		return nil
	}
	diff := morning - afternoon
	if diff < 0 {
		diff = -diff
	}
	skew := float64(diff) / float64(total)
	if skew <= th.ShiftSkewMin {
		return nil
	}

	dominant := models.ShiftMorning
	label := "morning"
	if afternoon > morning {
		dominant = models.ShiftAfternoon
		label = "afternoon"
	}

	var out []models.Suggestion
	for _, block := range available {
		if block.Shift == dominant {
			out = append(out, models.Suggestion{
				TimeBlockID: block.ID,
				Reason:      fmt.Sprintf("Matches your usual %s preference", label),
				Confidence:  100 * skew,
			})
		}
	}
	return out
}
