package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/typelearn/internal/storage"
	"github.com/example/typelearn/pkg/models"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	s := New(mem)
	require.NoError(t, s.Init(context.Background()))
	return s, mem
}

func addBook(t *testing.T, s *Store, book models.Book) {
	t.Helper()
	require.NoError(t, s.UpsertBook(context.Background(), book))
}

func TestInitSeedsDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	assert.NotEmpty(t, s.Books(models.KindWord))
	assert.NotEmpty(t, s.Books(models.KindPoetry))
	assert.Empty(t, s.Books(models.KindCustom))

	for _, id := range []string{models.DictCollected, models.DictWrong, models.DictMastered} {
		assert.NotNil(t, s.UserDict(id), "dict %q should be seeded", id)
	}

	cfg := s.Settings()
	assert.Equal(t, 40, cfg.PerDayNew)
	assert.Equal(t, 20, cfg.PracticeCount)
	assert.True(t, cfg.SoundEnabled)
}

func TestInitReloadsPersistedState(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	s := New(mem)
	require.NoError(t, s.Init(ctx))
	addBook(t, s, models.Book{ID: "mine", Kind: models.KindCustom, Name: "My Lines"})
	require.NoError(t, s.UpdateBookProgress(ctx, models.KindCustom, "mine", 50))

	reloaded := New(mem)
	require.NoError(t, reloaded.Init(ctx))
	book := reloaded.Book(models.KindCustom, "mine")
	require.NotNil(t, book)
	assert.Equal(t, 50, book.Progress)
}

func TestUpdateBookProgress(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	addBook(t, s, models.Book{ID: "b1", Kind: models.KindWord, Name: "b1", ItemCount: 100})

	before := time.Now()
	require.NoError(t, s.UpdateBookProgress(ctx, models.KindWord, "b1", 42, 42))

	book := s.Book(models.KindWord, "b1")
	require.NotNil(t, book)
	assert.Equal(t, 42, book.Progress)
	assert.Equal(t, 42, book.LastLearnIndex)
	require.NotNil(t, book.LastPractice)
	assert.False(t, book.LastPractice.Before(before))
	assert.False(t, book.Complete)
}

func TestUpdateBookProgressCompleteFlag(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	addBook(t, s, models.Book{ID: "b1", Kind: models.KindWord, Name: "b1", ItemCount: 10})

	require.NoError(t, s.UpdateBookProgress(ctx, models.KindWord, "b1", 100, 10))
	assert.True(t, s.Book(models.KindWord, "b1").Complete)
}

func TestUpdateBookProgressMissingBookIsNoOp(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	saves := mem.Saves()
	require.NoError(t, s.UpdateBookProgress(ctx, models.KindWord, "no-such-book", 10))
	assert.Equal(t, saves, mem.Saves(), "a stale id must not trigger a persist")
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	addBook(t, s, models.Book{ID: "doomed", Kind: models.KindCustom, Name: "doomed"})
	require.NotNil(t, s.Book(models.KindCustom, "doomed"))

	require.NoError(t, s.DeleteBook(ctx, models.KindCustom, "doomed"))
	assert.Nil(t, s.Book(models.KindCustom, "doomed"))
	for _, b := range s.Books(models.KindCustom) {
		assert.NotEqual(t, "doomed", b.ID)
	}
}

func TestDeleteBookLeavesOrphanRecords(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	addBook(t, s, models.Book{ID: "doomed", Kind: models.KindWord, Name: "doomed",
		Items: []models.Item{{ID: "doomed-1", Text: "gone"}}})

	require.NoError(t, s.RecordAttempt(ctx, "doomed-1", "gone", true))
	require.NoError(t, s.DeleteBook(ctx, models.KindWord, "doomed"))

	// The orphan stays; it is harmless and never surfaced without a live book.
	assert.NotNil(t, s.LearnRecord("doomed-1"))
}

func TestRecordAttemptCreatesRecordLazily(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.Nil(t, s.LearnRecord("cet4-7"))
	require.NoError(t, s.RecordAttempt(ctx, "cet4-7", "absence", true))

	rec := s.LearnRecord("cet4-7")
	require.NotNil(t, rec)
	assert.Equal(t, "absence", rec.ItemKey)
	assert.Equal(t, 1, rec.CorrectCount)
	assert.Equal(t, 1, rec.ReviewCount)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestAddToUserDictIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	item := models.Item{ID: "cet4-1", Text: "abandon", Meaning: "v. 放弃"}
	require.NoError(t, s.AddToUserDict(ctx, models.DictWrong, item))
	require.NoError(t, s.AddToUserDict(ctx, models.DictWrong, item))

	// Same content under a different generated id still counts as a dup.
	require.NoError(t, s.AddToUserDict(ctx, models.DictWrong, models.Item{ID: "cet4-99", Text: "Abandon "}))

	dict := s.UserDict(models.DictWrong)
	require.NotNil(t, dict)
	assert.Len(t, dict.Items, 1)
}

func TestAddToUserDictPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	for _, w := range []string{"cherry", "apple", "banana"} {
		require.NoError(t, s.AddToUserDict(ctx, models.DictCollected, models.Item{ID: w, Text: w}))
	}
	dict := s.UserDict(models.DictCollected)
	require.Len(t, dict.Items, 3)
	assert.Equal(t, "cherry", dict.Items[0].Text)
	assert.Equal(t, "apple", dict.Items[1].Text)
	assert.Equal(t, "banana", dict.Items[2].Text)
}

func TestRemoveFromUserDict(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.AddToUserDict(ctx, models.DictWrong, models.Item{ID: "a", Text: "alpha"}))
	require.NoError(t, s.AddToUserDict(ctx, models.DictWrong, models.Item{ID: "b", Text: "beta"}))

	require.NoError(t, s.RemoveFromUserDict(ctx, models.DictWrong, "a"))
	dict := s.UserDict(models.DictWrong)
	require.Len(t, dict.Items, 1)
	assert.Equal(t, "beta", dict.Items[0].Text)

	// Absent dicts and items are tolerated.
	require.NoError(t, s.RemoveFromUserDict(ctx, "nope", "a"))
	require.NoError(t, s.RemoveFromUserDict(ctx, models.DictWrong, "a"))
}

func TestUpdateDailyStatsAccumulates(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.UpdateDailyStats(ctx, 10, 5, 12, 3, 120))
	require.NoError(t, s.UpdateDailyStats(ctx, 2, 0, 1, 1, 30))

	stat := s.TodayStat()
	require.NotNil(t, stat)
	assert.Equal(t, 12, stat.NewCount)
	assert.Equal(t, 5, stat.ReviewCount)
	assert.Equal(t, 13, stat.CorrectCount)
	assert.Equal(t, 4, stat.WrongCount)
	assert.Equal(t, 150, stat.StudySeconds)
	assert.Equal(t, time.Now().Format("2006-01-02"), stat.Date)
}

func TestUpdateSettingsShallowMerge(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	off := false
	count := 80
	require.NoError(t, s.UpdateSettings(ctx, models.SettingsPatch{
		SoundEnabled: &off,
		PerDayNew:    &count,
	}))

	cfg := s.Settings()
	assert.False(t, cfg.SoundEnabled)
	assert.Equal(t, 80, cfg.PerDayNew)
	// Untouched fields keep their values.
	assert.True(t, cfg.AutoNext)
	assert.Equal(t, 20, cfg.PracticeCount)
}

func TestUpsertBookKeepsProgressOnReplace(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	addBook(t, s, models.Book{ID: "b", Kind: models.KindCustom, Name: "old name"})
	require.NoError(t, s.UpdateBookProgress(ctx, models.KindCustom, "b", 30, 3))

	addBook(t, s, models.Book{ID: "b", Kind: models.KindCustom, Name: "new name"})
	book := s.Book(models.KindCustom, "b")
	require.NotNil(t, book)
	assert.Equal(t, "new name", book.Name)
	assert.Equal(t, 30, book.Progress)
	assert.Equal(t, 3, book.LastLearnIndex)
}

func TestUpsertBookKeepsPreloadedCount(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	addBook(t, s, models.Book{ID: "b", Kind: models.KindWord, Name: "b"})
	require.NoError(t, s.SetBookCount(ctx, models.KindWord, "b", 3500))

	// Metadata-only upsert: no items, no count.
	addBook(t, s, models.Book{ID: "b", Kind: models.KindWord, Name: "renamed"})

	book := s.Book(models.KindWord, "b")
	require.NotNil(t, book)
	assert.Equal(t, "renamed", book.Name)
	assert.Equal(t, 3500, book.ItemCount)
}

func TestUpsertBookGeneratesID(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.UpsertBook(context.Background(), models.Book{Kind: models.KindCustom, Name: "no id"}))

	books := s.Books(models.KindCustom)
	require.Len(t, books, 1)
	assert.NotEmpty(t, books[0].ID)
}

// failingProvider rejects every save after an initial grace period.
type failingProvider struct {
	storage.Provider
	fail bool
}

func (p *failingProvider) Save(ctx context.Context, data []byte) error {
	if p.fail {
		return errors.New("disk full")
	}
	return p.Provider.Save(ctx, data)
}

func TestPersistenceFailureIsVisible(t *testing.T) {
	ctx := context.Background()
	p := &failingProvider{Provider: storage.NewMemory()}
	s := New(p)
	require.NoError(t, s.Init(ctx))

	p.fail = true
	err := s.UpdateDailyStats(ctx, 1, 0, 1, 0, 10)
	require.Error(t, err, "storage failures must surface, silent data loss is not acceptable")
	assert.Contains(t, err.Error(), "failed to persist state")
}

func TestEveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	addBook(t, s, models.Book{ID: "b", Kind: models.KindWord, Name: "b", ItemCount: 10})

	before := mem.Saves()
	require.NoError(t, s.UpdateBookProgress(ctx, models.KindWord, "b", 10, 1))
	require.NoError(t, s.RecordAttempt(ctx, "b-1", "x", true))
	require.NoError(t, s.AddToUserDict(ctx, models.DictWrong, models.Item{ID: "b-1", Text: "x"}))
	require.NoError(t, s.UpdateDailyStats(ctx, 1, 0, 1, 0, 5))
	assert.Equal(t, before+4, mem.Saves())
}
