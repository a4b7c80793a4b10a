package models

// DailyStat accumulates study activity for one calendar date (local time).
// Created lazily on the first activity of the day and updated additively,
// never overwritten wholesale.
type DailyStat struct {
	Date         string `json:"date"` // YYYY-MM-DD
	NewCount     int    `json:"new_count"`
	ReviewCount  int    `json:"review_count"`
	CorrectCount int    `json:"correct_count"`
	WrongCount   int    `json:"wrong_count"`
	StudySeconds int    `json:"study_seconds"`
}
