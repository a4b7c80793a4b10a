package srs

import (
	"time"

	"github.com/example/typelearn/pkg/models"
)

// Curve implements the fixed expanding-interval review schedule. Each
// correct answer pushes the next review further out along the interval
// table; a wrong answer always resets urgency to the shortest interval.
type Curve struct {
	// Review intervals in days for the 1st, 2nd, ... correct answer.
	IntervalsDays []int
	// Number of correct answers after which an item counts as mastered.
	MasteryThreshold int
}

// New creates a Curve with the default schedule.
func New() *Curve {
	return &Curve{
		IntervalsDays:    []int{1, 2, 4, 7, 15, 30},
		MasteryThreshold: 5,
	}
}

// Apply updates a learn record in place for one attempt outcome.
//
// Mastery is a one-way ratchet: once set it is never revoked here. A later
// wrong answer still counts and resets the due date, but the item stays
// retired from the default review queue.
func (c *Curve) Apply(rec *models.LearnRecord, correct bool, now time.Time) {
	rec.ReviewCount++
	if correct {
		rec.CorrectCount++
		level := rec.CorrectCount - 1
		if level >= len(c.IntervalsDays) {
			level = len(c.IntervalsDays) - 1
		}
		rec.NextReviewDue = now.AddDate(0, 0, c.IntervalsDays[level])
		if rec.CorrectCount >= c.MasteryThreshold {
			rec.Mastered = true
		}
	} else {
		rec.WrongCount++
		rec.NextReviewDue = now.AddDate(0, 0, c.IntervalsDays[0])
	}
}

// Due reports whether the record should be reviewed at the given time.
// Mastered items are never due.
func (c *Curve) Due(rec models.LearnRecord, now time.Time) bool {
	return !rec.Mastered && !rec.NextReviewDue.After(now)
}
