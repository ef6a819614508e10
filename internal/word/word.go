// Package word provides the word record, its query model, and the stores that persist it.
package word

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("word not found")
	ErrInvalidWord = errors.New("invalid word")
)

// MasteryThreshold is the accuracy count at which a word becomes mastered.
const MasteryThreshold = 15

// Word is a term/meaning pair together with its review bookkeeping.
type Word struct {
	ID       string `db:"id"`
	Term     string `db:"term"`
	Meaning  string `db:"meaning"`
	Memo     string `db:"memo"`
	Synonyms string `db:"synonyms"`

	SRSStage       int        `db:"srs_stage"`
	NextReviewDate *time.Time `db:"next_review_date"`

	CorrectCount     int        `db:"correct_count"`
	WrongCount       int        `db:"wrong_count"`
	ImportanceCount  int        `db:"importance_count"`
	AccuracyCount    int        `db:"accuracy_count"`
	LastAccuracyDate *time.Time `db:"last_accuracy_date"`

	IsFavorite bool `db:"is_favorite"`
	IsMastered bool `db:"is_mastered"`

	CreatedAt time.Time `db:"created_at"`
}

// IsDue reports whether the word should be studied at now.
// A word without a review date is always due.
func (w *Word) IsDue(now time.Time) bool {
	return w.NextReviewDate == nil || !w.NextReviewDate.After(now)
}

//go:generate mockgen -source=word.go -destination=../mocks/word/mock_store.go -package=mock_word Store

// Store persists words. Fetch returns references that callers may mutate and pass back to Save.
type Store interface {
	Fetch(ctx context.Context, query Query) ([]*Word, error)
	Save(ctx context.Context, w *Word) error
	Delete(ctx context.Context, id string) error
}
