// Package notification reminds the user once a day when words are waiting for review.
package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/at-ishikawa/vocato/internal/study"
	"github.com/at-ishikawa/vocato/internal/word"
)

const (
	DailyReviewTag = "daily_review"
	reminderTitle  = "VocaTo"
)

//go:generate mockgen -source=reminder.go -destination=../mocks/notification/mock_notifier.go -package=mock_notification Notifier

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// QueueBuilder finds the words that are due.
type QueueBuilder interface {
	Build(ctx context.Context, settings study.Settings) []*word.Word
}

// Reminder runs the daily review reminder on a gocron scheduler.
type Reminder struct {
	scheduler *gocron.Scheduler
	builder   QueueBuilder
	notifier  Notifier
}

func NewReminder(location *time.Location, builder QueueBuilder, notifier Notifier) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(location),
		builder:   builder,
		notifier:  notifier,
	}
}

// ScheduleDaily replaces any previous reminder with one at hour:minute every day.
func (r *Reminder) ScheduleDaily(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid reminder time %02d:%02d", hour, minute)
	}
	if err := r.scheduler.RemoveByTag(DailyReviewTag); err != nil && !errors.Is(err, gocron.ErrJobNotFoundWithTag) {
		return fmt.Errorf("scheduler.RemoveByTag() > %w", err)
	}

	_, err := r.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:%02d", hour, minute)).Tag(DailyReviewTag).Do(func() {
		if err := r.Remind(context.Background()); err != nil {
			slog.Default().Error("failed to send the review reminder", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler.Do() > %w", err)
	}
	return nil
}

// CancelAll removes every scheduled reminder.
func (r *Reminder) CancelAll() {
	r.scheduler.Clear()
}

// NextRun returns when the daily reminder fires next. It is only known once the scheduler has started.
func (r *Reminder) NextRun() (time.Time, bool) {
	jobs, err := r.scheduler.FindJobsByTag(DailyReviewTag)
	if err != nil || len(jobs) == 0 {
		return time.Time{}, false
	}
	return jobs[0].NextRun(), true
}

func (r *Reminder) Start() {
	r.scheduler.StartAsync()
}

func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// Remind notifies the user about the due words. Nothing is sent when no word is due.
func (r *Reminder) Remind(ctx context.Context) error {
	settings := study.DefaultSettings()
	settings.QuestionCount = 0

	due := r.builder.Build(ctx, settings)
	if len(due) == 0 {
		slog.Default().Debug("no words are due, skipping the reminder")
		return nil
	}

	body := fmt.Sprintf("Time to review your words! %d words are due.", len(due))
	if len(due) == 1 {
		body = "Time to review your words! 1 word is due."
	}
	if err := r.notifier.Notify(ctx, reminderTitle, body); err != nil {
		return fmt.Errorf("notifier.Notify() > %w", err)
	}
	return nil
}
