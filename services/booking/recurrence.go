package booking

import (
	"time"

	"reservio/models"
)

// Expansion bounds. The emission cap is a safety bound against malformed or
// unbounded patterns; the horizon applies when the pattern has no end date.
const (
	MaxOccurrences     = 365
	DefaultHorizonDays = 365
)

// ExpandPattern turns an anchor date plus a recurrence pattern into a bounded,
// ordered sequence of candidate dates. The caller validates the pattern; the
// expander only walks it.
//
// Weekly patterns emit dates whose weekday is selected and whose week lies on
// an every-Nth-week stride counted from the anchor's own week (weeks start on
// Monday). Monthly patterns preserve the anchor's day-of-month and clamp to
// the last day of shorter target months (Jan 31 -> Feb 29/28).
func ExpandPattern(anchor time.Time, pattern models.RecurrencePattern) []time.Time {
	interval := pattern.Interval
	if interval < 1 {
		// Validated upstream; the guard keeps the walk finite regardless.
		interval = 1
	}

	end := anchor.AddDate(0, 0, DefaultHorizonDays)
	if pattern.EndDate != "" {
		if parsed, err := time.Parse(models.DateLayout, pattern.EndDate); err == nil {
			end = parsed
		}
	}

	var dates []time.Time
	switch pattern.Type {
	case models.RecurrenceDaily:
		for d := anchor; !d.After(end) && len(dates) < MaxOccurrences; d = d.AddDate(0, 0, interval) {
			dates = append(dates, d)
		}

	case models.RecurrenceWeekly:
		selected := make(map[time.Weekday]struct{}, len(pattern.DaysOfWeek))
		for _, wd := range pattern.DaysOfWeek {
			selected[wd] = struct{}{}
		}
		anchorWeek := startOfWeek(anchor)
		for d := anchor; !d.After(end) && len(dates) < MaxOccurrences; d = d.AddDate(0, 0, 1) {
			if _, ok := selected[d.Weekday()]; !ok {
				continue
			}
			weeks := daysBetween(anchorWeek, startOfWeek(d)) / 7
			if weeks%interval == 0 {
				dates = append(dates, d)
			}
		}

	case models.RecurrenceMonthly:
		day := anchor.Day()
		for step := 0; len(dates) < MaxOccurrences; step += interval {
			d := addMonthsClamped(anchor, step, day)
			if d.After(end) {
				break
			}
			dates = append(dates, d)
		}
	}

	return dates
}

// startOfWeek returns the Monday on or before the given date.
func startOfWeek(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// addMonthsClamped steps months forward from the anchor, restoring the
// original day-of-month and clamping it to the target month's length.
func addMonthsClamped(anchor time.Time, months, day int) time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	target := first.AddDate(0, months, 0)
	last := target.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, anchor.Location())
}
