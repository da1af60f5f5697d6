package models

// Suggestion is a ranked slot proposal for a requester.
type Suggestion struct {
	TimeBlockID string  `json:"time_block_id"`
	Reason      string  `json:"reason"`
	Confidence  float64 `json:"confidence"` // 0-100, higher is better
}
