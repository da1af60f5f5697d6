package models

import "time"

// RecurrenceType enumerates the supported repetition schemes.
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// RecurrencePattern describes how an anchor booking request repeats across
// future dates. DaysOfWeek is meaningful only for weekly patterns and must be
// non-empty there; EndDate, when set, is an inclusive "YYYY-MM-DD" bound.
type RecurrencePattern struct {
	Type       RecurrenceType `bson:"type" json:"type"`
	Interval   int            `bson:"interval" json:"interval"`
	DaysOfWeek []time.Weekday `bson:"days_of_week,omitempty" json:"days_of_week,omitempty"`
	EndDate    string         `bson:"end_date,omitempty" json:"end_date,omitempty"`
}
