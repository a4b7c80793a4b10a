package words

import (
	"context"
	"log"
	"path/filepath"

	"github.com/example/typelearn/internal/store"
	"github.com/example/typelearn/pkg/models"
)

// defaultFiles maps built-in word book ids to their bundled list files.
var defaultFiles = map[string]string{
	"cet4":   "CET-4.xlsx",
	"cet6":   "CET-6.xlsx",
	"gk3500": "gk3500.xlsx",
	"ky":     "ky3728.xlsx",
}

// Service loads word-book corpora into the store on demand. Loading is
// one-shot and idempotent per book: a book that already has items is
// returned as-is, so duplicate concurrent load requests are safe to issue.
type Service struct {
	store *store.Store
	dir   string
	files map[string]string
}

// NewService creates a loader reading list files from dir.
func NewService(st *store.Store, dir string) *Service {
	return &Service{
		store: st,
		dir:   dir,
		files: defaultFiles,
	}
}

// LoadBook ensures the book's items are loaded and returns them. Any
// parse or read failure resolves to an empty result with a log line; the
// book stays in its not-yet-loaded state and the load is retryable.
func (s *Service) LoadBook(ctx context.Context, bookID string) []models.Item {
	book := s.store.Book(models.KindWord, bookID)
	if book == nil {
		log.Printf("words: unknown word book %q", bookID)
		return nil
	}
	if len(book.Items) > 0 {
		return book.Items
	}

	name, ok := s.files[bookID]
	if !ok {
		log.Printf("words: no list file for word book %q", bookID)
		return nil
	}

	items, err := ParseFile(filepath.Join(s.dir, name), bookID)
	if err != nil {
		log.Printf("words: failed to load word book %q: %v", bookID, err)
		return nil
	}
	if err := s.store.SetBookItems(ctx, models.KindWord, bookID, items, nil); err != nil {
		log.Printf("words: failed to store word book %q: %v", bookID, err)
		return nil
	}
	return items
}

// PreloadCounts fills in item counts for built-in books whose content has
// not been loaded yet and returns the counts per book id. Failures are
// logged and skipped.
func (s *Service) PreloadCounts(ctx context.Context) map[string]int {
	counts := make(map[string]int)
	for bookID, name := range s.files {
		book := s.store.Book(models.KindWord, bookID)
		if book == nil || book.ItemCount > 0 {
			continue
		}
		count, err := CountRows(filepath.Join(s.dir, name))
		if err != nil {
			log.Printf("words: failed to preload count for %q: %v", bookID, err)
			continue
		}
		if err := s.store.SetBookCount(ctx, models.KindWord, bookID, count); err != nil {
			log.Printf("words: failed to store count for %q: %v", bookID, err)
			continue
		}
		counts[bookID] = count
	}
	return counts
}
