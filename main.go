package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/typelearn/internal/planner"
	"github.com/example/typelearn/internal/scheduler"
	"github.com/example/typelearn/internal/storage"
	"github.com/example/typelearn/internal/store"
	"github.com/example/typelearn/internal/words"
	"github.com/example/typelearn/pkg/models"
)

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := storage.Open()
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer provider.Close()

	progress := store.New(provider)
	if err := progress.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize state: %v", err)
	}

	wordsDir := os.Getenv("WORDS_DIR")
	if wordsDir == "" {
		wordsDir = "words"
	}
	loader := words.NewService(progress, wordsDir)
	loader.PreloadCounts(ctx)

	plan := planner.New(progress)
	for _, book := range progress.Books(models.KindWord) {
		task := plan.TodayTask(book.ID)
		log.Printf("%s: %d items, progress %d%%, today %d new / %d review / %d due, done by %s",
			book.Name, book.TotalItems(), book.Progress,
			len(task.New), len(task.Review), len(task.ReviewAll),
			plan.EstimatedCompletionDate(book.ID))
	}

	sched := scheduler.New(plan, scheduler.LogNotifier{})
	sched.Start()
	defer sched.Stop()

	log.Println("typelearn started. Press Ctrl+C to stop.")
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
}
