package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/typelearn/internal/planner"
)

// Default notification hour window.
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier delivers due-review reminders to the presentation layer.
type Notifier interface {
	Notify(dueCount int) error
}

// LogNotifier writes reminders to the process log. Useful as a default and
// in headless runs.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(dueCount int) error {
	log.Printf("reminder: %d items due for review", dueCount)
	return nil
}

// Scheduler periodically checks for due reviews and notifies inside the
// configured hour window.
type Scheduler struct {
	scheduler *gocron.Scheduler
	planner   *planner.Planner
	notifier  Notifier
}

// New creates a scheduler instance.
func New(p *planner.Planner, notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		planner:   p,
		notifier:  notifier,
	}
}

// Start begins running the hourly due-review check without blocking.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndNotify)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunManualCheck forces a due-review check regardless of the hour window.
func (s *Scheduler) RunManualCheck() error {
	if count := s.planner.DueCount(); count > 0 {
		return s.notifier.Notify(count)
	}
	return nil
}

func (s *Scheduler) checkAndNotify() {
	currentHour := time.Now().Hour()

	startHour := hourFromEnv("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := hourFromEnv("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("scheduler: hour %d is outside notification hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	count := s.planner.DueCount()
	if count == 0 {
		return
	}
	if err := s.notifier.Notify(count); err != nil {
		log.Printf("scheduler: error sending reminder: %v", err)
	}
}

func hourFromEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
