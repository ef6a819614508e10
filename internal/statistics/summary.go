// Package statistics summarizes the study progress of the word list.
package statistics

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/at-ishikawa/vocato/internal/progress"
	"github.com/at-ishikawa/vocato/internal/srs"
	"github.com/at-ishikawa/vocato/internal/word"
)

// RecentLimit is how many recently scheduled words a summary lists.
const RecentLimit = 10

// Summary holds the numbers shown on the statistics screen
type Summary struct {
	// TodayCount counts words whose next review falls on today, i.e. words answered today.
	TodayCount int
	// Accuracy is correct / (correct + wrong) over the words counted in TodayCount, 0 without attempts.
	Accuracy float64

	TotalWords    int
	FavoriteWords int
	MasteredWords int
	DueWords      int
	StageCounts   [srs.MaxStage + 1]int

	// RecentWords are the words with the latest review dates, latest first.
	RecentWords []*word.Word

	StudySecondsToday int
}

// Calculate computes a summary. now decides which calendar day counts as today.
func Calculate(words []*word.Word, now time.Time, studySeconds int) Summary {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfTomorrow := startOfToday.AddDate(0, 0, 1)

	summary := Summary{
		TotalWords:        len(words),
		StudySecondsToday: studySeconds,
	}

	var correct, attempts int
	for _, w := range words {
		if w.NextReviewDate != nil && !w.NextReviewDate.Before(startOfToday) && w.NextReviewDate.Before(startOfTomorrow) {
			summary.TodayCount++
			correct += w.CorrectCount
			attempts += w.CorrectCount + w.WrongCount
		}
		if w.IsFavorite {
			summary.FavoriteWords++
		}
		if w.IsMastered {
			summary.MasteredWords++
		}
		if w.IsDue(now) {
			summary.DueWords++
		}
		summary.StageCounts[srs.ClampStage(w.SRSStage)]++
	}
	if attempts > 0 {
		summary.Accuracy = float64(correct) / float64(attempts)
	}

	summary.RecentWords = word.Query{
		Sort:  []word.SortKey{{Column: word.ColumnNextReviewDate, Desc: true}},
		Limit: RecentLimit,
	}.Apply(words)
	return summary
}

// Reporter loads the data a summary needs.
type Reporter struct {
	store word.Store
	log   progress.StudyLog
	clock clockwork.Clock
}

func NewReporter(store word.Store, log progress.StudyLog, clock clockwork.Clock) *Reporter {
	return &Reporter{store: store, log: log, clock: clock}
}

// Summary never fails. Unreadable sources count as empty and are logged.
func (r *Reporter) Summary(ctx context.Context) Summary {
	now := r.clock.Now()

	words, err := r.store.Fetch(ctx, word.Query{})
	if err != nil {
		slog.Default().Warn("failed to fetch words for statistics", slog.Any("error", err))
		words = nil
	}

	seconds, err := r.log.StudySeconds(ctx, now)
	if err != nil {
		slog.Default().Warn("failed to read today's study time", slog.Any("error", err))
		seconds = 0
	}
	return Calculate(words, now, seconds)
}
