package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/at-ishikawa/vocato/internal/progress"
	"github.com/at-ishikawa/vocato/internal/srs"
	"github.com/at-ishikawa/vocato/internal/word"
)

// ErrPersist wraps store failures. The in-memory change it reports has already been applied.
var ErrPersist = errors.New("failed to persist study progress")

type State int

const (
	StateActive State = iota
	StatePaused
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AnswerPolicy describes how a quiz mode credits an answer.
type AnswerPolicy struct {
	// CreditAccuracy raises the daily accuracy count on a correct answer.
	CreditAccuracy bool
	// ImportanceOnMiss raises the importance on a wrong answer.
	ImportanceOnMiss bool
	// Schedule moves the word through the review stages. Without it the answer only advances the cursor.
	Schedule bool
}

func PolicyFor(mode QuizMode) AnswerPolicy {
	switch mode {
	case QuizModeFlashcards, QuizModeMultipleChoice:
		return AnswerPolicy{CreditAccuracy: true, ImportanceOnMiss: true, Schedule: true}
	case QuizModeDictation:
		return AnswerPolicy{ImportanceOnMiss: true}
	default:
		return AnswerPolicy{}
	}
}

// Session walks one queue of words with a cursor and records the answers.
// It is safe for concurrent use; the words in the queue are shared with the caller.
type Session struct {
	store    word.Store
	progress progress.Store
	builder  *QueueBuilder
	clock    clockwork.Clock
	settings Settings

	mu            sync.Mutex
	queue         []*word.Word
	cursor        int
	state         State
	hasUnfinished bool
}

// NewSession builds the first queue and checks whether an unfinished session was saved.
func NewSession(
	ctx context.Context,
	store word.Store,
	progressStore progress.Store,
	clock clockwork.Clock,
	settings Settings,
) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	settings = settings.Normalize()

	builder := NewQueueBuilder(store, clock)
	s := &Session{
		store:    store,
		progress: progressStore,
		builder:  builder,
		clock:    clock,
		settings: settings,
		queue:    builder.Build(ctx, settings),
		state:    StateActive,
	}

	snapshot, err := progressStore.LoadSnapshot(ctx)
	if err != nil {
		slog.Default().Warn("failed to check for an unfinished session", slog.Any("error", err))
	}
	s.hasUnfinished = snapshot != nil
	return s, nil
}

func (s *Session) Settings() Settings {
	return s.settings
}

// Current returns the word under the cursor, or nil when the queue is empty.
func (s *Session) Current() *word.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *Session) currentLocked() *word.Word {
	if s.cursor < 0 || s.cursor >= len(s.queue) {
		return nil
	}
	return s.queue[s.cursor]
}

// Queue returns the words in study order.
func (s *Session) Queue() []*word.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := make([]*word.Word, len(s.queue))
	copy(queue, s.queue)
	return queue
}

func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) HasUnfinishedSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasUnfinished
}

// Advance moves the cursor to the next word, saturating at the last one.
// It reports true when the cursor could not move, which means the last word has been consumed.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked()
}

func (s *Session) advanceLocked() bool {
	last := max(len(s.queue)-1, 0)
	if s.cursor >= last {
		s.cursor = last
		return true
	}
	s.cursor++
	return false
}

// RecordAnswer schedules the current word by the answer, saves it, and advances.
// It does nothing on an empty queue.
func (s *Session) RecordAnswer(ctx context.Context, correct bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordAnswerLocked(ctx, correct)
}

func (s *Session) recordAnswerLocked(ctx context.Context, correct bool) (bool, error) {
	w := s.currentLocked()
	if w == nil {
		return false, nil
	}

	w.SRSStage = srs.NextStage(w.SRSStage, correct)
	if correct {
		w.CorrectCount++
	} else {
		w.WrongCount++
	}
	next := srs.NextReviewDate(w.SRSStage, s.clock.Now())
	w.NextReviewDate = &next

	err := s.saveLocked(ctx, w)
	return s.advanceLocked(), err
}

// Answer applies the policy of a quiz mode to the current word.
func (s *Session) Answer(ctx context.Context, correct bool, policy AnswerPolicy) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.currentLocked()
	if w == nil {
		return false, nil
	}

	var errs []error
	if correct && policy.CreditAccuracy {
		errs = append(errs, s.increaseAccuracyLocked(ctx, w))
	}
	if !correct && policy.ImportanceOnMiss {
		errs = append(errs, s.increaseImportanceLocked(ctx, w))
	}

	finished := false
	if policy.Schedule {
		var err error
		finished, err = s.recordAnswerLocked(ctx, correct)
		errs = append(errs, err)
	} else {
		finished = s.advanceLocked()
	}
	return finished, errors.Join(errs...)
}

// PersistProgress saves the queue order and the cursor so the session can be resumed later.
func (s *Session) PersistProgress(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.queue))
	for i, w := range s.queue {
		ids[i] = w.ID
	}
	s.state = StatePaused
	s.hasUnfinished = true

	if err := s.progress.SaveSnapshot(ctx, progress.Snapshot{WordIDs: ids, Cursor: s.cursor}); err != nil {
		slog.Default().Error("failed to save the session snapshot", slog.Any("error", err))
		return fmt.Errorf("%w: progress.SaveSnapshot() > %w", ErrPersist, err)
	}
	return nil
}

// Restore replaces the queue with the saved one, in the saved order.
// Words deleted since the snapshot are dropped and the cursor is clamped to the remaining queue.
// It reports whether a snapshot was found.
func (s *Session) Restore(ctx context.Context) bool {
	snapshot, err := s.progress.LoadSnapshot(ctx)
	if err != nil {
		slog.Default().Warn("failed to load the session snapshot", slog.Any("error", err))
		return false
	}
	if snapshot == nil {
		return false
	}

	var found []*word.Word
	if len(snapshot.WordIDs) > 0 {
		found, err = s.store.Fetch(ctx, word.Query{Filter: word.Filter{IDs: snapshot.WordIDs}})
		if err != nil {
			slog.Default().Warn("failed to fetch the words of the session snapshot", slog.Any("error", err))
			found = nil
		}
	}
	byID := make(map[string]*word.Word, len(found))
	for _, w := range found {
		byID[w.ID] = w
	}
	queue := make([]*word.Word, 0, len(snapshot.WordIDs))
	for _, id := range snapshot.WordIDs {
		if w, ok := byID[id]; ok {
			queue = append(queue, w)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = queue
	s.cursor = min(max(snapshot.Cursor, 0), max(len(queue)-1, 0))
	s.hasUnfinished = false
	s.state = StateActive
	return true
}

// Complete clears the saved snapshot and starts a fresh pass over the words due now.
// The session stays completed when nothing is left to study.
func (s *Session) Complete(ctx context.Context) error {
	var persistErr error
	if err := s.progress.ClearSnapshot(ctx); err != nil {
		slog.Default().Error("failed to clear the session snapshot", slog.Any("error", err))
		persistErr = fmt.Errorf("%w: progress.ClearSnapshot() > %w", ErrPersist, err)
	}

	queue := s.builder.Build(ctx, s.settings)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasUnfinished = false
	s.queue = queue
	s.cursor = 0
	s.state = StateCompleted
	if len(queue) > 0 {
		s.state = StateActive
	}
	return persistErr
}

func (s *Session) IncreaseImportance(ctx context.Context, w *word.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.increaseImportanceLocked(ctx, w)
}

func (s *Session) increaseImportanceLocked(ctx context.Context, w *word.Word) error {
	w.ImportanceCount++
	return s.saveLocked(ctx, w)
}

// DecreaseImportance lowers the importance, never below zero.
func (s *Session) DecreaseImportance(ctx context.Context, w *word.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ImportanceCount <= 0 {
		return nil
	}
	w.ImportanceCount--
	return s.saveLocked(ctx, w)
}

// IncreaseAccuracy credits a correct answer at most once per calendar day.
// Reaching word.MasteryThreshold marks the word as mastered.
func (s *Session) IncreaseAccuracy(ctx context.Context, w *word.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.increaseAccuracyLocked(ctx, w)
}

func (s *Session) increaseAccuracyLocked(ctx context.Context, w *word.Word) error {
	now := s.clock.Now()
	if w.LastAccuracyDate != nil && sameDay(*w.LastAccuracyDate, now) {
		return nil
	}
	w.AccuracyCount++
	w.LastAccuracyDate = &now
	if w.AccuracyCount >= word.MasteryThreshold {
		w.IsMastered = true
	}
	return s.saveLocked(ctx, w)
}

func (s *Session) ToggleMastered(ctx context.Context, w *word.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.IsMastered = !w.IsMastered
	return s.saveLocked(ctx, w)
}

func (s *Session) ToggleFavorite(ctx context.Context, w *word.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.IsFavorite = !w.IsFavorite
	return s.saveLocked(ctx, w)
}

func (s *Session) saveLocked(ctx context.Context, w *word.Word) error {
	if err := s.store.Save(ctx, w); err != nil {
		slog.Default().Error("failed to save a word",
			slog.String("id", w.ID),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: store.Save() > %w", ErrPersist, err)
	}
	return nil
}

// sameDay compares calendar days in the location of now.
func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
