package models

import "time"

// LearnRecord tracks the spaced-repetition history and scheduling state of a
// single item. Created lazily on the first attempt, updated on every
// subsequent attempt, never deleted.
type LearnRecord struct {
	ItemID        string    `json:"item_id"`
	ItemKey       string    `json:"item_key"`
	CreatedAt     time.Time `json:"created_at"`
	ReviewCount   int       `json:"review_count"`
	CorrectCount  int       `json:"correct_count"`
	WrongCount    int       `json:"wrong_count"`
	NextReviewDue time.Time `json:"next_review_due"`
	Mastered      bool      `json:"mastered"`
}
