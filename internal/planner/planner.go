package planner

import (
	"time"

	"github.com/example/typelearn/internal/srs"
	"github.com/example/typelearn/internal/store"
	"github.com/example/typelearn/pkg/models"
)

// FallbackPerDay is used when neither the book nor the settings carry a
// daily new-item goal.
const FallbackPerDay = 40

// Planner derives "today's task" and completion estimates for a word book
// from the progress store. It owns no state of its own.
type Planner struct {
	store *store.Store
	curve *srs.Curve
	now   func() time.Time
}

// TodayTask is the day's study plan for one book.
//
// New and Review are cursor-window batches: the next goal-sized slice of
// unseen items and the goal-sized slice immediately before the cursor
// (roughly yesterday's new batch). ReviewAll holds every item whose learn
// record is due by the interval schedule. The two review notions overlap and
// are intentionally not de-duplicated; an item may appear in both lists.
type TodayTask struct {
	New       []models.Item
	Review    []models.Item
	ReviewAll []models.Item
}

// New creates a Planner reading from the given store.
func New(s *store.Store) *Planner {
	return &Planner{
		store: s,
		curve: srs.New(),
		now:   time.Now,
	}
}

// TodayTask returns today's new and review batches for a word book. A
// missing or still-unloaded book yields an empty task.
func (p *Planner) TodayTask(bookID string) TodayTask {
	book := p.store.Book(models.KindWord, bookID)
	if book == nil || len(book.Items) == 0 {
		return TodayTask{}
	}

	goal := p.dailyGoal(book)
	cursor := book.LastLearnIndex
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(book.Items) {
		cursor = len(book.Items)
	}

	task := TodayTask{}

	end := cursor + goal
	if end > len(book.Items) {
		end = len(book.Items)
	}
	task.New = append(task.New, book.Items[cursor:end]...)

	start := cursor - goal
	if start < 0 {
		start = 0
	}
	task.Review = append(task.Review, book.Items[start:cursor]...)

	task.ReviewAll = p.dueItems(book)
	return task
}

// dueItems resolves due, unmastered learn records back to item objects.
// Records referencing items not present in the book are silently dropped;
// orphans from deleted books are expected and harmless.
func (p *Planner) dueItems(book *models.Book) []models.Item {
	byID := make(map[string]models.Item, len(book.Items))
	for _, it := range book.Items {
		byID[it.ID] = it
	}

	now := p.now()
	var due []models.Item
	for _, rec := range p.store.LearnRecordList() {
		if !p.curve.Due(rec, now) {
			continue
		}
		if it, ok := byID[rec.ItemID]; ok {
			due = append(due, it)
		}
	}
	return due
}

// DueCount returns the number of due, unmastered learn records across all
// books.
func (p *Planner) DueCount() int {
	now := p.now()
	count := 0
	for _, rec := range p.store.LearnRecordList() {
		if p.curve.Due(rec, now) {
			count++
		}
	}
	return count
}

// RemainingDays estimates how many days of study are left in the book at
// the current daily goal. Returns 0 when the book or its item count is
// unavailable.
func (p *Planner) RemainingDays(bookID string) int {
	book := p.store.Book(models.KindWord, bookID)
	if book == nil || book.TotalItems() == 0 {
		return 0
	}
	remaining := book.TotalItems() - book.LastLearnIndex
	if remaining <= 0 {
		return 0
	}
	goal := p.dailyGoal(book)
	return (remaining + goal - 1) / goal
}

// EstimatedCompletionDate returns the projected finish date as YYYY-MM-DD,
// or "unknown" when the book or its item count is unavailable.
func (p *Planner) EstimatedCompletionDate(bookID string) string {
	book := p.store.Book(models.KindWord, bookID)
	if book == nil || book.TotalItems() == 0 {
		return "unknown"
	}
	days := p.RemainingDays(bookID)
	return p.now().AddDate(0, 0, days).Format("2006-01-02")
}

func (p *Planner) dailyGoal(book *models.Book) int {
	if book.PerDayNew > 0 {
		return book.PerDayNew
	}
	if goal := p.store.Settings().PerDayNew; goal > 0 {
		return goal
	}
	return FallbackPerDay
}
