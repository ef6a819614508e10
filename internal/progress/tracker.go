package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Tracker measures one study session at a time and records its length on the day it ends.
type Tracker struct {
	log   StudyLog
	clock clockwork.Clock

	mu      sync.Mutex
	started *time.Time
}

// NewTracker creates a new Tracker.
func NewTracker(log StudyLog, clock clockwork.Clock) *Tracker {
	return &Tracker{log: log, clock: clock}
}

// Start begins measuring. Starting again restarts the measurement.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()
	t.started = &now
}

// End records the whole seconds elapsed since Start. Without a Start it does nothing.
func (t *Tracker) End(ctx context.Context) error {
	t.mu.Lock()
	started := t.started
	t.started = nil
	t.mu.Unlock()

	if started == nil {
		return nil
	}
	now := t.clock.Now()
	elapsed := int(now.Sub(*started) / time.Second)
	if err := t.log.AddStudySeconds(ctx, now, elapsed); err != nil {
		return fmt.Errorf("log.AddStudySeconds() > %w", err)
	}
	return nil
}

// Today returns the seconds studied on the clock's current day.
func (t *Tracker) Today(ctx context.Context) (int, error) {
	seconds, err := t.log.StudySeconds(ctx, t.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("log.StudySeconds() > %w", err)
	}
	return seconds, nil
}
