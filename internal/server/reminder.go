package server

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// DueCounter reports how many questions are waiting. *progress.Engine
// satisfies it through DueTotal.
type DueCounter interface {
	DueTotal() (int, error)
}

// Reminder periodically logs how many questions are due.
type Reminder struct {
	scheduler *gocron.Scheduler
	counter   DueCounter
	logf      func(format string, args ...any)
}

// NewReminder creates a reminder that checks every interval.
func NewReminder(counter DueCounter, every time.Duration) (*Reminder, error) {
	if every <= 0 {
		return nil, fmt.Errorf("reminder interval must be positive, got %s", every)
	}
	r := &Reminder{
		scheduler: gocron.NewScheduler(time.UTC),
		counter:   counter,
		logf:      log.Printf,
	}
	r.scheduler.SingletonModeAll()
	if _, err := r.scheduler.Every(every).Do(r.check); err != nil {
		return nil, fmt.Errorf("schedule reminder: %w", err)
	}
	return r, nil
}

// Start runs the schedule in the background.
func (r *Reminder) Start() {
	r.scheduler.StartAsync()
}

// Stop terminates the schedule.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

func (r *Reminder) check() {
	n, err := r.counter.DueTotal()
	if err != nil {
		r.logf("due reminder: %v", err)
		return
	}
	if n == 0 {
		return
	}
	r.logf("%d questions due for review", n)
}
