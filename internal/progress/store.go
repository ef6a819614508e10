// Package progress persists the unfinished study session and the time spent studying each day.
package progress

import (
	"context"
	"time"
)

// Snapshot is the minimal state needed to resume a session: the queue order and the cursor.
type Snapshot struct {
	WordIDs []string `yaml:"word_ids"`
	Cursor  int      `yaml:"cursor"`
}

//go:generate mockgen -source=store.go -destination=../mocks/progress/mock_store.go -package=mock_progress Store,StudyLog

// Store keeps at most one session snapshot.
// LoadSnapshot returns nil without an error when nothing was saved.
type Store interface {
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	ClearSnapshot(ctx context.Context) error
}

// StudyLog accumulates study seconds per calendar day.
type StudyLog interface {
	AddStudySeconds(ctx context.Context, day time.Time, seconds int) error
	StudySeconds(ctx context.Context, day time.Time) (int, error)
}

func dayKey(day time.Time) string {
	return day.Format(time.DateOnly)
}
