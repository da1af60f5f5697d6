package models

// Shift groupings for time blocks.
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
)

// TimeBlock is a fixed, named period of the day. The catalog of blocks is
// seeded once and treated as read-only by the scheduling core.
type TimeBlock struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"` // e.g., "08:00 - 09:30"
	Start int    `bson:"start" json:"start"` // Minutes from midnight
	End   int    `bson:"end" json:"end"`     // Minutes from midnight
	Shift string `bson:"shift" json:"shift"` // morning | afternoon
}
