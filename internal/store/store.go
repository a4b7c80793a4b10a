package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/typelearn/internal/srs"
	"github.com/example/typelearn/internal/storage"
	"github.com/example/typelearn/pkg/models"
)

// Store is the authoritative container for all application state: books,
// learn records, daily stats, user dicts and settings. Every mutating
// operation applies its change and synchronously persists the whole
// serialized state before returning, so rapid sequential mutations are never
// lost to a race with process teardown.
//
// Lookups of absent books, dicts or records are tolerated deliberately:
// mutations become silent no-ops and reads return nil. UI callers routinely
// hold stale ids and must not be punished for it.
type Store struct {
	mu       sync.Mutex
	provider storage.Provider
	curve    *srs.Curve
	state    models.AppState

	now func() time.Time
}

// New creates a Store backed by the given persistence provider.
func New(p storage.Provider) *Store {
	return &Store{
		provider: p,
		curve:    srs.New(),
		now:      time.Now,
	}
}

// Init loads the persisted state, falling back to seeded defaults when no
// state has been saved yet or the saved blob cannot be parsed.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.provider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &s.state); err != nil {
			log.Printf("store: failed to parse saved state, starting fresh: %v", err)
			s.state = models.AppState{}
		}
	}

	s.seedDefaults()
	return s.persist(ctx)
}

// persist serializes the whole state and saves it. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(&s.state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if err := s.provider.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// Export writes the persisted state blob to dir with a timestamped filename.
func (s *Store) Export(ctx context.Context, dir string) (string, error) {
	return storage.Export(ctx, s.provider, dir)
}

// ImportReplace replaces the persisted blob with the contents of path and
// reloads the in-memory state from it.
func (s *Store) ImportReplace(ctx context.Context, path string) error {
	if err := storage.Import(ctx, s.provider, path); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = models.AppState{}
	s.mu.Unlock()
	return s.Init(ctx)
}

func (s *Store) books(kind models.BookKind) *[]models.Book {
	switch kind {
	case models.KindWord:
		return &s.state.WordBooks
	case models.KindPoetry:
		return &s.state.PoetryBooks
	case models.KindCustom:
		return &s.state.CustomBooks
	}
	return nil
}

// Books returns all books of one kind.
func (s *Store) Books(kind models.BookKind) []models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	books := s.books(kind)
	if books == nil {
		return nil
	}
	out := make([]models.Book, len(*books))
	copy(out, *books)
	return out
}

// Book returns the book with the given id, or nil when it does not exist.
// The returned pointer aliases store state and must be treated as read-only.
func (s *Store) Book(kind models.BookKind, id string) *models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findBook(kind, id)
}

func (s *Store) findBook(kind models.BookKind, id string) *models.Book {
	books := s.books(kind)
	if books == nil {
		return nil
	}
	for i := range *books {
		if (*books)[i].ID == id {
			return &(*books)[i]
		}
	}
	return nil
}

// UpsertBook inserts the book or replaces the existing one with the same id.
// A missing id is generated. Progress fields of a replaced book are kept.
func (s *Store) UpsertBook(ctx context.Context, book models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := s.books(book.Kind)
	if books == nil {
		return fmt.Errorf("unknown book kind %q", book.Kind)
	}
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	replaced := false
	for i := range *books {
		if (*books)[i].ID == book.ID {
			book.Progress = (*books)[i].Progress
			book.Complete = (*books)[i].Complete
			book.LastPractice = (*books)[i].LastPractice
			book.LastLearnIndex = (*books)[i].LastLearnIndex
			if book.ItemCount == 0 {
				// Keep a preloaded count through metadata-only upserts.
				book.ItemCount = (*books)[i].ItemCount
			}
			(*books)[i] = book
			replaced = true
			break
		}
	}
	if !replaced {
		*books = append(*books, book)
	}
	return s.persist(ctx)
}

// DeleteBook removes the book with the given id. Learn records referencing
// its items are left in place; they become unreachable and are never
// surfaced without a live book.
func (s *Store) DeleteBook(ctx context.Context, kind models.BookKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := s.books(kind)
	if books == nil {
		return nil
	}
	kept := (*books)[:0]
	for _, b := range *books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	*books = kept
	return s.persist(ctx)
}

// SetBookItems adopts loaded corpus content into a book. No-op when the book
// does not exist.
func (s *Store) SetBookItems(ctx context.Context, kind models.BookKind, id string, items []models.Item, units []models.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := s.findBook(kind, id)
	if book == nil {
		return nil
	}
	book.Items = items
	book.Units = units
	book.ItemCount = len(items)
	return s.persist(ctx)
}

// SetBookCount records an item count known ahead of the full content load.
// No-op when the book does not exist.
func (s *Store) SetBookCount(ctx context.Context, kind models.BookKind, id string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := s.findBook(kind, id)
	if book == nil {
		return nil
	}
	book.ItemCount = count
	return s.persist(ctx)
}

// UpdateBookProgress sets the book's progress percentage, stamps the last
// practice time and optionally moves the sequential study cursor. Progress
// of 100 or more marks the book complete. Silent no-op when the book does
// not exist: callers are expected to have validated existence, and stale ids
// from loosely synchronized UI state are not an error.
func (s *Store) UpdateBookProgress(ctx context.Context, kind models.BookKind, id string, percent int, cursor ...int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := s.findBook(kind, id)
	if book == nil {
		return nil
	}
	book.Progress = percent
	now := s.now()
	book.LastPractice = &now
	if len(cursor) > 0 {
		idx := cursor[0]
		if idx < 0 {
			idx = 0
		}
		if total := book.TotalItems(); total > 0 && idx > total {
			idx = total
		}
		book.LastLearnIndex = idx
	}
	if percent >= 100 {
		book.Complete = true
	}
	return s.persist(ctx)
}

// RecordAttempt records one spaced-repetition attempt for an item, creating
// the learn record lazily on first contact.
func (s *Store) RecordAttempt(ctx context.Context, itemID, itemKey string, correct bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.LearnRecords == nil {
		s.state.LearnRecords = make(map[string]*models.LearnRecord)
	}
	rec, ok := s.state.LearnRecords[itemID]
	if !ok {
		rec = &models.LearnRecord{
			ItemID:    itemID,
			ItemKey:   itemKey,
			CreatedAt: s.now(),
		}
		s.state.LearnRecords[itemID] = rec
	}
	s.curve.Apply(rec, correct, s.now())
	return s.persist(ctx)
}

// LearnRecord returns a copy of the record for an item, or nil when the item
// has never been attempted.
func (s *Store) LearnRecord(itemID string) *models.LearnRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.state.LearnRecords[itemID]
	if !ok {
		return nil
	}
	cp := *rec
	return &cp
}

// LearnRecordList returns copies of all learn records ordered by next review
// due time. Copies keep readers on other goroutines, like the reminder
// scheduler, off the store's interior state.
func (s *Store) LearnRecordList() []models.LearnRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]models.LearnRecord, 0, len(s.state.LearnRecords))
	for _, rec := range s.state.LearnRecords {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].NextReviewDue.Before(records[j].NextReviewDue)
	})
	return records
}

// UserDict returns the dict with the given id, or nil when it does not
// exist. The returned pointer aliases store state; treat it as read-only.
func (s *Store) UserDict(dictID string) *models.UserDict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findDict(dictID)
}

func (s *Store) findDict(dictID string) *models.UserDict {
	for i := range s.state.UserDicts {
		if s.state.UserDicts[i].ID == dictID {
			return &s.state.UserDicts[i]
		}
	}
	return nil
}

// AddToUserDict appends the item to the dict unless an item with the same
// content key is already a member. Unknown dict ids create a new dict.
func (s *Store) AddToUserDict(ctx context.Context, dictID string, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dict := s.findDict(dictID)
	if dict == nil {
		s.state.UserDicts = append(s.state.UserDicts, models.UserDict{ID: dictID, Name: dictID})
		dict = &s.state.UserDicts[len(s.state.UserDicts)-1]
	}
	if dict.Contains(item.Key()) {
		return nil
	}
	dict.Items = append(dict.Items, item)
	return s.persist(ctx)
}

// RemoveFromUserDict removes the item with the given id from the dict.
// Silent no-op when the dict or item is absent.
func (s *Store) RemoveFromUserDict(ctx context.Context, dictID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dict := s.findDict(dictID)
	if dict == nil {
		return nil
	}
	kept := dict.Items[:0]
	removed := false
	for _, it := range dict.Items {
		if it.ID == itemID {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		return nil
	}
	dict.Items = kept
	return s.persist(ctx)
}

// UpdateDailyStats additively accumulates study activity under today's local
// date. The stat row is created lazily on the first activity of the day.
func (s *Store) UpdateDailyStats(ctx context.Context, newCount, reviewCount, correct, wrong, seconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.DailyStats == nil {
		s.state.DailyStats = make(map[string]*models.DailyStat)
	}
	date := s.now().Format("2006-01-02")
	stat, ok := s.state.DailyStats[date]
	if !ok {
		stat = &models.DailyStat{Date: date}
		s.state.DailyStats[date] = stat
	}
	stat.NewCount += newCount
	stat.ReviewCount += reviewCount
	stat.CorrectCount += correct
	stat.WrongCount += wrong
	stat.StudySeconds += seconds
	return s.persist(ctx)
}

// DailyStat returns the stat row for a YYYY-MM-DD date, or nil.
func (s *Store) DailyStat(date string) *models.DailyStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DailyStats[date]
}

// TodayStat returns today's stat row, or nil when nothing has been studied
// yet today.
func (s *Store) TodayStat() *models.DailyStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DailyStats[s.now().Format("2006-01-02")]
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// UpdateSettings shallow-merges the patch into the current settings.
func (s *Store) UpdateSettings(ctx context.Context, patch models.SettingsPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := &s.state.Settings
	if patch.SoundEnabled != nil {
		cfg.SoundEnabled = *patch.SoundEnabled
	}
	if patch.AutoNext != nil {
		cfg.AutoNext = *patch.AutoNext
	}
	if patch.ShowHint != nil {
		cfg.ShowHint = *patch.ShowHint
	}
	if patch.TabSwitchInput != nil {
		cfg.TabSwitchInput = *patch.TabSwitchInput
	}
	if patch.PracticeCount != nil {
		cfg.PracticeCount = *patch.PracticeCount
	}
	if patch.PerDayNew != nil {
		cfg.PerDayNew = *patch.PerDayNew
	}
	if patch.PerDayReview != nil {
		cfg.PerDayReview = *patch.PerDayReview
	}
	return s.persist(ctx)
}
