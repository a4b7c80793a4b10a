package session

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/example/typelearn/internal/store"
	"github.com/example/typelearn/pkg/models"
)

// Mode selects how a practice session records outcomes.
type Mode string

const (
	// ModeStudy is the scheduled curriculum: attempts feed the
	// spaced-repetition learn records and the sequential cursor advances.
	ModeStudy Mode = "study"
	// ModeFree is free practice over any item list; learn records are not
	// touched.
	ModeFree Mode = "free"
	// ModeShuffle is free practice in shuffled order.
	ModeShuffle Mode = "shuffle"
)

// Config describes one practice pass over an ordered item list.
type Config struct {
	Mode   Mode
	Kind   models.BookKind
	BookID string
	Items  []models.Item

	// Review marks the items as coming from a review queue rather than the
	// new batch; it routes daily-stat counting and suppresses cursor
	// advancement.
	Review bool

	// StartIndex is where free practice resumes within the book sequence.
	StartIndex int

	// UnitIndex and TotalUnits drive line-based progress for poetry and
	// custom books.
	UnitIndex  int
	TotalUnits int
}

// Summary reports the outcome of a finished session.
type Summary struct {
	Total      int
	Completed  int
	Correct    int
	Wrong      int
	Accuracy   float64 // 0-1, over resolved items
	Elapsed    int     // seconds
	WrongItems []models.Item
}

// Session drives one practice pass: it sequences the item list, records each
// attempt outcome into the store and accumulates summary statistics. It is
// independent of presentation; the caller supplies correctness verdicts.
type Session struct {
	store *store.Store
	cfg   Config

	items      []models.Item
	index      int
	correct    int
	wrong      int
	wrongItems []models.Item
	baseCursor int
	startedAt  time.Time
	finished   bool

	now func() time.Time
}

// New starts a session over the configured item list. Shuffle mode practices
// a shuffled copy; the caller's slice is never reordered.
func New(st *store.Store, cfg Config) *Session {
	items := cfg.Items
	if cfg.Mode == ModeShuffle {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		shuffled := make([]models.Item, len(items))
		copy(shuffled, items)
		rnd.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		items = shuffled
	}

	s := &Session{
		store: st,
		cfg:   cfg,
		items: items,
		now:   time.Now,
	}
	if book := st.Book(cfg.Kind, cfg.BookID); book != nil {
		s.baseCursor = book.LastLearnIndex
	}
	s.startedAt = s.now()
	return s
}

// Current returns the item awaiting resolution, or false when the session is
// complete.
func (s *Session) Current() (models.Item, bool) {
	if s.index >= len(s.items) {
		return models.Item{}, false
	}
	return s.items[s.index], true
}

// Done reports whether every item has been resolved.
func (s *Session) Done() bool {
	return s.index >= len(s.items)
}

// Completed returns the number of resolved items.
func (s *Session) Completed() int {
	return s.index
}

// CheckAnswer compares typed input against the current item's expected text:
// case-insensitive for word books, exact for poetry and custom lines.
// Surrounding whitespace is ignored either way.
func (s *Session) CheckAnswer(input string) bool {
	item, ok := s.Current()
	if !ok {
		return false
	}
	got := strings.TrimSpace(input)
	want := strings.TrimSpace(item.Text)
	if s.cfg.Kind == models.KindWord {
		return strings.EqualFold(got, want)
	}
	return got == want
}

// ResolveCurrent records the verdict for the current item and advances.
// Wrong answers are collected into the session wrong list and appended to
// the "wrong" user dict. Study mode additionally feeds the item's learn
// record. Resolving a completed session is a no-op.
func (s *Session) ResolveCurrent(ctx context.Context, correct bool) error {
	item, ok := s.Current()
	if !ok {
		return nil
	}

	if correct {
		s.correct++
	} else {
		s.wrong++
		s.wrongItems = append(s.wrongItems, item)
		if err := s.store.AddToUserDict(ctx, models.DictWrong, item); err != nil {
			return err
		}
	}

	if s.cfg.Mode == ModeStudy {
		if err := s.store.RecordAttempt(ctx, item.ID, item.Key(), correct); err != nil {
			return err
		}
	}

	s.index++
	return nil
}

// Finish persists the session's progress and daily stats and returns the
// summary. It is safe to call on early exit: cursor and progress advance by
// whatever was actually completed, so partial progress is never lost. A
// session where nothing was resolved records nothing. Only the first call
// takes effect.
func (s *Session) Finish(ctx context.Context) (Summary, error) {
	summary := s.summary()
	if s.finished {
		return summary, nil
	}
	s.finished = true

	if s.index == 0 {
		return summary, nil
	}

	if err := s.persistProgress(ctx); err != nil {
		return summary, err
	}

	newCount, reviewCount := 0, 0
	if s.cfg.Mode == ModeStudy {
		if s.cfg.Review {
			reviewCount = s.index
		} else {
			newCount = s.index
		}
	}
	if err := s.store.UpdateDailyStats(ctx, newCount, reviewCount, s.correct, s.wrong, summary.Elapsed); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *Session) summary() Summary {
	summary := Summary{
		Total:      len(s.items),
		Completed:  s.index,
		Correct:    s.correct,
		Wrong:      s.wrong,
		Elapsed:    int(s.now().Sub(s.startedAt) / time.Second),
		WrongItems: s.wrongItems,
	}
	if resolved := s.correct + s.wrong; resolved > 0 {
		summary.Accuracy = float64(s.correct) / float64(resolved)
	}
	return summary
}

// persistProgress computes the book's new progress from how far the session
// got and writes it through the store.
func (s *Session) persistProgress(ctx context.Context) error {
	book := s.store.Book(s.cfg.Kind, s.cfg.BookID)
	if book == nil || s.index == 0 {
		return nil
	}

	switch {
	case s.cfg.Kind == models.KindWord && s.cfg.Mode == ModeStudy && !s.cfg.Review:
		// Sequential study: the cursor advances by the items completed this
		// session, whether or not the list was finished.
		total := book.TotalItems()
		if total == 0 {
			return nil
		}
		cursor := s.baseCursor + s.index
		if cursor > total {
			cursor = total
		}
		progress := int(math.Round(float64(cursor) / float64(total) * 100))
		return s.store.UpdateBookProgress(ctx, s.cfg.Kind, s.cfg.BookID, progress, cursor)

	case s.cfg.Kind == models.KindWord:
		// Free practice over the book sequence: progress only, no cursor.
		total := book.TotalItems()
		if total == 0 {
			return nil
		}
		reached := s.cfg.StartIndex + s.index
		if reached > total {
			reached = total
		}
		progress := int(math.Round(float64(reached) / float64(total) * 100))
		return s.store.UpdateBookProgress(ctx, s.cfg.Kind, s.cfg.BookID, progress)

	default:
		// Line-based books track the position within the current unit as a
		// fractional component.
		if s.cfg.TotalUnits == 0 {
			return nil
		}
		frac := 0.0
		if len(s.items) > 0 {
			frac = float64(s.index) / float64(len(s.items))
		}
		progress := int(math.Round((float64(s.cfg.UnitIndex) + frac) / float64(s.cfg.TotalUnits) * 100))
		if progress > 100 {
			progress = 100
		}
		return s.store.UpdateBookProgress(ctx, s.cfg.Kind, s.cfg.BookID, progress)
	}
}
